package main

import (
	"context"
	"fmt"
)

// Member represents a registered library member. The ID is an opaque token
// minted at registration time and immutable afterwards.
type Member struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contactInfo,omitempty"`
}

// NewMember builds a member record. Contact info is free text and optional.
func NewMember(id, name, contactInfo string) (Member, error) {
	if len(id) == 0 {
		return Member{}, fmt.Errorf("%w: member id is required", ErrInvalidArgument)
	}
	if len(name) == 0 {
		return Member{}, fmt.Errorf("%w: member name is required", ErrInvalidArgument)
	}
	return Member{ID: id, Name: name, ContactInfo: contactInfo}, nil
}

// MemberStorage defines possible operations on member records.
type MemberStorage interface {
	Save(ctx context.Context, member Member) (Member, error)
	GetOne(ctx context.Context, id string) (Member, error)
	GetAll(ctx context.Context) ([]Member, error)
	Delete(ctx context.Context, id string) (bool, error)
}
