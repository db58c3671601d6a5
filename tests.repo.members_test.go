package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestMemoryMemberStorage_SaveAndGetOne ensures the registry upserts by member id.
func TestMemoryMemberStorage_SaveAndGetOne(t *testing.T) {
	store := NewMemoryMemberStorage(zap.NewNop())

	member, err := NewMember("m:1", "Alice", "a@x.com")
	require.NoError(t, err)
	_, err = store.Save(context.TODO(), member)
	require.NoError(t, err)

	got, err := store.GetOne(context.TODO(), "m:1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	// name and contact info are mutable in place through a re-save.
	member.Name = "Alice B."
	member.ContactInfo = "alice@x.com"
	_, err = store.Save(context.TODO(), member)
	require.NoError(t, err)
	got, err = store.GetOne(context.TODO(), "m:1")
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", got.Name)
	assert.Equal(t, "alice@x.com", got.ContactInfo)
}

// TestMemoryMemberStorage_GetOneUnknown ensures unknown ids report not found.
func TestMemoryMemberStorage_GetOneUnknown(t *testing.T) {
	store := NewMemoryMemberStorage(zap.NewNop())
	_, err := store.GetOne(context.TODO(), "m:404")
	assert.ErrorIs(t, err, ErrMemberNotFound)
	_, err = store.GetOne(context.TODO(), "")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

// TestMemoryMemberStorage_SaveRequiresID ensures records without an id are rejected.
func TestMemoryMemberStorage_SaveRequiresID(t *testing.T) {
	store := NewMemoryMemberStorage(zap.NewNop())
	_, err := store.Save(context.TODO(), Member{Name: "No ID"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestMemoryMemberStorage_GetAllAndDelete covers the remaining base contract.
func TestMemoryMemberStorage_GetAllAndDelete(t *testing.T) {
	store := NewMemoryMemberStorage(zap.NewNop())
	for _, id := range []string{"m:1", "m:2", "m:3"} {
		_, err := store.Save(context.TODO(), Member{ID: id, Name: "member " + id})
		require.NoError(t, err)
	}

	members, err := store.GetAll(context.TODO())
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "m:1", members[0].ID)
	assert.Equal(t, "m:3", members[2].ID)

	deleted, err := store.Delete(context.TODO(), "m:2")
	require.NoError(t, err)
	assert.True(t, deleted)

	members, err = store.GetAll(context.TODO())
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "m:3", members[1].ID)
}
