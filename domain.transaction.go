package main

import (
	"context"
	"fmt"
	"time"
)

// TransactionType qualifies a loan record. Only BORROW records are created, a
// completed loan is a BORROW record carrying a return timestamp rather than a
// separate RETURN record.
type TransactionType string

const TransactionBorrow TransactionType = "BORROW"

// Transaction is one lending record linking a member and a book. A nil
// ReturnedAt means the loan is still open. For a given (member, isbn) pair at
// most one transaction is open at a time, enforced by the lending service at
// borrow time.
type Transaction struct {
	ID         string          `json:"id"`
	BookISBN   string          `json:"bookIsbn"`
	MemberID   string          `json:"memberId"`
	Type       TransactionType `json:"type"`
	CreatedAt  time.Time       `json:"createdAt"`
	DueDate    time.Time       `json:"dueDate"`
	ReturnedAt *time.Time      `json:"returnedAt,omitempty"`
}

// NewBorrowTransaction builds an open BORROW record. The due date is a
// calendar date, required for every borrow.
func NewBorrowTransaction(id, bookISBN, memberID string, createdAt, dueDate time.Time) (Transaction, error) {
	if len(id) == 0 {
		return Transaction{}, fmt.Errorf("%w: transaction id is required", ErrInvalidArgument)
	}
	if len(bookISBN) == 0 {
		return Transaction{}, fmt.Errorf("%w: book isbn is required", ErrInvalidArgument)
	}
	if len(memberID) == 0 {
		return Transaction{}, fmt.Errorf("%w: member id is required", ErrInvalidArgument)
	}
	if dueDate.IsZero() {
		return Transaction{}, fmt.Errorf("%w: due date is required for a borrow transaction", ErrInvalidArgument)
	}
	return Transaction{
		ID:        id,
		BookISBN:  bookISBN,
		MemberID:  memberID,
		Type:      TransactionBorrow,
		CreatedAt: createdAt,
		DueDate:   DateOf(dueDate),
	}, nil
}

// IsOpen reports whether the loan has not been closed by a return yet.
func (t Transaction) IsOpen() bool {
	return t.Type == TransactionBorrow && t.ReturnedAt == nil
}

// IsOverdue reports whether the loan is still open and its due date is
// strictly before the given clock reading. The comparison is date based.
func (t Transaction) IsOverdue(now time.Time) bool {
	return t.IsOpen() && !t.DueDate.IsZero() && DateOf(now).After(t.DueDate)
}

// TransactionStorage defines possible operations on lending records, with the
// secondary lookups the lending service needs on top of the base contract.
type TransactionStorage interface {
	Save(ctx context.Context, transaction Transaction) (Transaction, error)
	GetOne(ctx context.Context, id string) (Transaction, error)
	GetAll(ctx context.Context) ([]Transaction, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByMember(ctx context.Context, memberID string) ([]Transaction, error)
	GetByBook(ctx context.Context, isbn string) ([]Transaction, error)
	GetOpenLoan(ctx context.Context, memberID, isbn string) (Transaction, error)
	GetAllOpenLoans(ctx context.Context) ([]Transaction, error)
}
