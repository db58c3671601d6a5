package main

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var _ MemberStorage = (*memoryMemberStorage)(nil)

// memoryMemberStorage is a concurrency safe in-memory member registry keyed
// by member id.
type memoryMemberStorage struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	members map[string]Member
	order   []string
}

// NewMemoryMemberStorage provides an instance of in-memory member storage.
func NewMemoryMemberStorage(logger *zap.Logger) MemberStorage {
	return &memoryMemberStorage{
		logger:  logger,
		members: make(map[string]Member),
		order:   []string{},
	}
}

// Save upserts a member record by its id.
func (ms *memoryMemberStorage) Save(_ context.Context, member Member) (Member, error) {
	if len(member.ID) == 0 {
		return Member{}, fmt.Errorf("%w: member id is required to save a member", ErrInvalidArgument)
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, exists := ms.members[member.ID]; !exists {
		ms.order = append(ms.order, member.ID)
	}
	ms.members[member.ID] = member
	return member, nil
}

// GetOne retrieves a member record based on its id.
func (ms *memoryMemberStorage) GetOne(_ context.Context, id string) (Member, error) {
	if len(id) == 0 {
		return Member{}, ErrMemberNotFound
	}
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	member, exists := ms.members[id]
	if !exists {
		return Member{}, ErrMemberNotFound
	}
	return member, nil
}

// GetAll retrieves a copy of the registry in insertion order.
func (ms *memoryMemberStorage) GetAll(_ context.Context) ([]Member, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	members := make([]Member, 0, len(ms.order))
	for _, id := range ms.order {
		members = append(members, ms.members[id])
	}
	return members, nil
}

// Delete removes a member record and reports whether it existed. The lending
// service never calls it, the operation exists for registry management tools.
func (ms *memoryMemberStorage) Delete(_ context.Context, id string) (bool, error) {
	if len(id) == 0 {
		return false, nil
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, exists := ms.members[id]; !exists {
		return false, nil
	}
	delete(ms.members, id)
	for i, key := range ms.order {
		if key == id {
			ms.order = append(ms.order[:i], ms.order[i+1:]...)
			break
		}
	}
	return true, nil
}
