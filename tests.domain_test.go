package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewBook ensures catalog entry construction rejects malformed input.
func TestNewBook(t *testing.T) {
	testCases := []struct {
		name    string
		title   string
		first   string
		last    string
		isbn    string
		copies  int
		wantErr bool
	}{
		{"valid book", "Dune", "Frank", "Herbert", "ISBN-1", 1, false},
		{"zero copies allowed", "Dune", "Frank", "Herbert", "ISBN-1", 0, false},
		{"missing isbn", "Dune", "Frank", "Herbert", "", 1, true},
		{"missing title", "", "Frank", "Herbert", "ISBN-1", 1, true},
		{"missing author first name", "Dune", "", "Herbert", "ISBN-1", 1, true},
		{"missing author last name", "Dune", "Frank", "", "ISBN-1", 1, true},
		{"negative copies", "Dune", "Frank", "Herbert", "ISBN-1", -1, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			book, err := NewBook(tc.title, tc.first, tc.last, tc.isbn, "SciFi", 1965, tc.copies)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.isbn, book.ISBN)
			assert.Equal(t, tc.copies, book.AvailableCopies)
			assert.Equal(t, "Frank Herbert", book.Author.FullName())
		})
	}
}

// TestNewMember ensures member construction requires an id and a name.
func TestNewMember(t *testing.T) {
	member, err := NewMember("m:1", "Alice", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "m:1", member.ID)
	assert.Equal(t, "Alice", member.Name)

	_, err = NewMember("m:1", "", "a@x.com")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewMember("", "Alice", "a@x.com")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// contact info stays optional.
	_, err = NewMember("m:1", "Alice", "")
	assert.NoError(t, err)
}

// TestNewBorrowTransaction ensures a borrow record always carries a due date.
func TestNewBorrowTransaction(t *testing.T) {
	now := time.Date(2023, 7, 2, 10, 30, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 14)

	transaction, err := NewBorrowTransaction("t:1", "ISBN-1", "m:1", now, due)
	require.NoError(t, err)
	assert.Equal(t, TransactionBorrow, transaction.Type)
	assert.Equal(t, time.Date(2023, 7, 16, 0, 0, 0, 0, time.UTC), transaction.DueDate)
	assert.True(t, transaction.IsOpen())
	assert.Nil(t, transaction.ReturnedAt)

	_, err = NewBorrowTransaction("t:1", "ISBN-1", "m:1", now, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewBorrowTransaction("", "ISBN-1", "m:1", now, due)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestTransactionIsOverdue ensures the overdue predicate is date based and
// flips off the moment a return timestamp is set.
func TestTransactionIsOverdue(t *testing.T) {
	now := time.Date(2023, 7, 2, 0, 0, 0, 0, time.UTC)

	dueYesterday, err := NewBorrowTransaction("t:1", "ISBN-1", "m:1", now.AddDate(0, 0, -15), now.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.True(t, dueYesterday.IsOverdue(now))

	// due today is not overdue yet, the comparison is strict.
	dueToday, err := NewBorrowTransaction("t:2", "ISBN-1", "m:1", now.AddDate(0, 0, -14), now)
	require.NoError(t, err)
	assert.False(t, dueToday.IsOverdue(now))

	// a very late return still clears the overdue state.
	returned := now
	dueYesterday.ReturnedAt = &returned
	assert.False(t, dueYesterday.IsOverdue(now))
	assert.False(t, dueYesterday.IsOpen())
}

// TestDateOf ensures clock readings are truncated to their calendar date.
func TestDateOf(t *testing.T) {
	in := time.Date(2023, 7, 2, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, time.Date(2023, 7, 2, 0, 0, 0, 0, time.UTC), DateOf(in))
}
