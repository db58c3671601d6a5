package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type lendingFixture struct {
	service      LendingServiceProvider
	clock        *MockClocker
	books        BookStorage
	members      MemberStorage
	transactions TransactionStorage
}

// newLendingFixture wires a lending service over real in-memory stores with a
// frozen clock and sequential ids, so scenarios stay fully deterministic.
func newLendingFixture(t *testing.T) *lendingFixture {
	t.Helper()
	logger := zap.NewNop()
	config := &Config{}
	config.Lending.LoanDurationDays = DefaultLoanDurationDays
	clock := NewMockClocker()
	books := NewMemoryBookStorage(logger)
	members := NewMemoryMemberStorage(logger)
	transactions := NewMemoryTransactionStorage(logger)
	return &lendingFixture{
		service:      NewLendingService(logger, config, clock, &MockSequenceUIDHandler{}, books, members, transactions),
		clock:        clock,
		books:        books,
		members:      members,
		transactions: transactions,
	}
}

func (f *lendingFixture) addBook(t *testing.T, isbn string, copies int) Book {
	t.Helper()
	book, err := f.service.AddBook(context.TODO(), "Dune", "Frank", "Herbert", isbn, "SciFi", 1965, copies)
	require.NoError(t, err)
	return book
}

func (f *lendingFixture) registerMember(t *testing.T, name string) Member {
	t.Helper()
	member, err := f.service.RegisterMember(context.TODO(), name, name+"@x.com")
	require.NoError(t, err)
	return member
}

// TestLendingService_AddBook covers catalog registration and its validation.
func TestLendingService_AddBook(t *testing.T) {
	f := newLendingFixture(t)

	book := f.addBook(t, "ISBN-1", 3)
	assert.Equal(t, "ISBN-1", book.ISBN)
	assert.Equal(t, 3, book.AvailableCopies)

	got, err := f.service.FindBookByISBN(context.TODO(), "ISBN-1")
	require.NoError(t, err)
	assert.Equal(t, book, got)

	_, err = f.service.AddBook(context.TODO(), "", "Frank", "Herbert", "ISBN-2", "SciFi", 1965, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = f.service.FindBookByISBN(context.TODO(), "ISBN-2")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

// TestLendingService_RegisterMember covers member registration with minted ids.
func TestLendingService_RegisterMember(t *testing.T) {
	f := newLendingFixture(t)

	alice := f.registerMember(t, "Alice")
	bob := f.registerMember(t, "Bob")
	assert.Equal(t, "m:1", alice.ID)
	assert.Equal(t, "m:2", bob.ID)

	got, err := f.service.FindMemberByID(context.TODO(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	members, err := f.service.GetAllMembers(context.TODO())
	require.NoError(t, err)
	assert.Len(t, members, 2)

	_, err = f.service.RegisterMember(context.TODO(), "", "nobody@x.com")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestLendingService_RemoveBookByISBN ensures removal reports presence.
func TestLendingService_RemoveBookByISBN(t *testing.T) {
	f := newLendingFixture(t)
	f.addBook(t, "ISBN-1", 1)

	deleted, err := f.service.RemoveBookByISBN(context.TODO(), "ISBN-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.service.RemoveBookByISBN(context.TODO(), "ISBN-1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

// TestLendingService_BorrowBook covers the happy path of opening a loan, the
// copy decrement and the due date derived from the loan duration.
func TestLendingService_BorrowBook(t *testing.T) {
	f := newLendingFixture(t)
	f.addBook(t, "ISBN-1", 2)
	member := f.registerMember(t, "Alice")

	err := f.service.BorrowBook(context.TODO(), member.ID, "ISBN-1")
	require.NoError(t, err)

	book, err := f.service.FindBookByISBN(context.TODO(), "ISBN-1")
	require.NoError(t, err)
	assert.Equal(t, 1, book.AvailableCopies)

	loan, err := f.transactions.GetOpenLoan(context.TODO(), member.ID, "ISBN-1")
	require.NoError(t, err)
	assert.Equal(t, TransactionBorrow, loan.Type)
	assert.Equal(t, f.clock.MockNow, loan.CreatedAt)
	// due 14 days after the frozen 2023-07-02 clock reading.
	assert.Equal(t, time.Date(2023, 7, 16, 0, 0, 0, 0, time.UTC), loan.DueDate)
	assert.True(t, loan.IsOpen())
}

// TestLendingService_BorrowBookFailures covers each precondition in order.
func TestLendingService_BorrowBookFailures(t *testing.T) {
	f := newLendingFixture(t)
	f.addBook(t, "ISBN-1", 1)
	member := f.registerMember(t, "Alice")
	other := f.registerMember(t, "Bob")

	err := f.service.BorrowBook(context.TODO(), "m:404", "ISBN-1")
	assert.ErrorIs(t, err, ErrMemberNotFound)

	err = f.service.BorrowBook(context.TODO(), member.ID, "ISBN-404")
	assert.ErrorIs(t, err, ErrBookNotFound)

	// a failed borrow must not have touched the copy count.
	book, err := f.service.FindBookByISBN(context.TODO(), "ISBN-1")
	require.NoError(t, err)
	assert.Equal(t, 1, book.AvailableCopies)

	require.NoError(t, f.service.BorrowBook(context.TODO(), member.ID, "ISBN-1"))

	err = f.service.BorrowBook(context.TODO(), member.ID, "ISBN-1")
	assert.ErrorIs(t, err, ErrBookAlreadyBorrowed)

	err = f.service.BorrowBook(context.TODO(), other.ID, "ISBN-1")
	assert.ErrorIs(t, err, ErrNoCopiesAvailable)
}

// TestLendingService_BorrowBookPartialFailure ensures a transaction write
// failure after the copy decrement surfaces as an operation failure.
func TestLendingService_BorrowBookPartialFailure(t *testing.T) {
	logger := zap.NewNop()
	config := &Config{}
	config.Lending.LoanDurationDays = DefaultLoanDurationDays
	books := NewMemoryBookStorage(logger)
	members := NewMemoryMemberStorage(logger)

	boom := errors.New("ledger unavailable")
	transactions := &MockTransactionStorage{
		GetOpenLoanFunc: func(_ context.Context, _, _ string) (Transaction, error) {
			return Transaction{}, ErrLoanNotFound
		},
		SaveFunc: func(_ context.Context, _ Transaction) (Transaction, error) {
			return Transaction{}, boom
		},
	}

	service := NewLendingService(logger, config, NewMockClocker(), &MockSequenceUIDHandler{}, books, members, transactions)
	_, err := books.Save(context.TODO(), Book{ISBN: "ISBN-1", Title: "Dune", AvailableCopies: 1})
	require.NoError(t, err)
	_, err = members.Save(context.TODO(), Member{ID: "m:1", Name: "Alice"})
	require.NoError(t, err)

	err = service.BorrowBook(context.TODO(), "m:1", "ISBN-1")
	var opErr *OperationFailedError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "borrow", opErr.Op)
	assert.ErrorIs(t, err, boom)

	// the decrement is deliberately not rolled back.
	book, err := books.GetOne(context.TODO(), "ISBN-1")
	require.NoError(t, err)
	assert.Equal(t, 0, book.AvailableCopies)
}

// TestLendingService_ReturnBook covers closing a loan and restoring the copy.
func TestLendingService_ReturnBook(t *testing.T) {
	f := newLendingFixture(t)
	f.addBook(t, "ISBN-1", 1)
	member := f.registerMember(t, "Alice")
	require.NoError(t, f.service.BorrowBook(context.TODO(), member.ID, "ISBN-1"))

	err := f.service.ReturnBook(context.TODO(), member.ID, "ISBN-1")
	require.NoError(t, err)

	book, err := f.service.FindBookByISBN(context.TODO(), "ISBN-1")
	require.NoError(t, err)
	assert.Equal(t, 1, book.AvailableCopies)

	_, err = f.transactions.GetOpenLoan(context.TODO(), member.ID, "ISBN-1")
	assert.ErrorIs(t, err, ErrLoanNotFound)

	// once closed the pair can borrow again.
	assert.NoError(t, f.service.BorrowBook(context.TODO(), member.ID, "ISBN-1"))
}

// TestLendingService_ReturnBookFailures covers return preconditions.
func TestLendingService_ReturnBookFailures(t *testing.T) {
	f := newLendingFixture(t)
	f.addBook(t, "ISBN-1", 1)
	member := f.registerMember(t, "Alice")

	err := f.service.ReturnBook(context.TODO(), "m:404", "ISBN-1")
	assert.ErrorIs(t, err, ErrMemberNotFound)

	err = f.service.ReturnBook(context.TODO(), member.ID, "ISBN-404")
	assert.ErrorIs(t, err, ErrBookNotFound)

	err = f.service.ReturnBook(context.TODO(), member.ID, "ISBN-1")
	assert.ErrorIs(t, err, ErrBookNotBorrowed)

	// returning twice trips the same guard.
	require.NoError(t, f.service.BorrowBook(context.TODO(), member.ID, "ISBN-1"))
	require.NoError(t, f.service.ReturnBook(context.TODO(), member.ID, "ISBN-1"))
	err = f.service.ReturnBook(context.TODO(), member.ID, "ISBN-1")
	assert.ErrorIs(t, err, ErrBookNotBorrowed)
}

// TestLendingService_LateReturn ensures a return past the due date still
// succeeds and closes the loan.
func TestLendingService_LateReturn(t *testing.T) {
	f := newLendingFixture(t)
	f.addBook(t, "ISBN-1", 1)
	member := f.registerMember(t, "Alice")
	require.NoError(t, f.service.BorrowBook(context.TODO(), member.ID, "ISBN-1"))

	// jump the clock well past the due date.
	f.clock.MockNow = f.clock.MockNow.AddDate(0, 0, 20)
	require.NoError(t, f.service.ReturnBook(context.TODO(), member.ID, "ISBN-1"))

	loan, err := f.transactions.GetOne(context.TODO(), "t:2")
	require.NoError(t, err)
	assert.False(t, loan.IsOpen())
	assert.False(t, loan.IsOverdue(f.clock.MockNow))
}

// TestLendingService_GetBorrowedBooksByMember ensures only open loans of the
// requested member are listed.
func TestLendingService_GetBorrowedBooksByMember(t *testing.T) {
	f := newLendingFixture(t)
	f.addBook(t, "ISBN-1", 1)
	f.addBook(t, "ISBN-2", 1)
	f.addBook(t, "ISBN-3", 1)
	alice := f.registerMember(t, "Alice")
	bob := f.registerMember(t, "Bob")

	require.NoError(t, f.service.BorrowBook(context.TODO(), alice.ID, "ISBN-1"))
	require.NoError(t, f.service.BorrowBook(context.TODO(), alice.ID, "ISBN-2"))
	require.NoError(t, f.service.BorrowBook(context.TODO(), bob.ID, "ISBN-3"))
	require.NoError(t, f.service.ReturnBook(context.TODO(), alice.ID, "ISBN-2"))

	loans, err := f.service.GetBorrowedBooksByMember(context.TODO(), alice.ID)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "ISBN-1", loans[0].BookISBN)

	_, err = f.service.GetBorrowedBooksByMember(context.TODO(), "m:404")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

// TestLendingService_GetAllOverdueBooks ensures only open loans past their due
// date show up, evaluated against the injected clock.
func TestLendingService_GetAllOverdueBooks(t *testing.T) {
	f := newLendingFixture(t)
	f.addBook(t, "ISBN-1", 1)
	f.addBook(t, "ISBN-2", 1)
	member := f.registerMember(t, "Alice")
	require.NoError(t, f.service.BorrowBook(context.TODO(), member.ID, "ISBN-1"))
	require.NoError(t, f.service.BorrowBook(context.TODO(), member.ID, "ISBN-2"))

	overdue, err := f.service.GetAllOverdueBooks(context.TODO())
	require.NoError(t, err)
	assert.Empty(t, overdue)

	// exactly on the due date nothing is overdue yet.
	f.clock.MockNow = f.clock.MockNow.AddDate(0, 0, DefaultLoanDurationDays)
	overdue, err = f.service.GetAllOverdueBooks(context.TODO())
	require.NoError(t, err)
	assert.Empty(t, overdue)

	f.clock.MockNow = f.clock.MockNow.AddDate(0, 0, 1)
	overdue, err = f.service.GetAllOverdueBooks(context.TODO())
	require.NoError(t, err)
	assert.Len(t, overdue, 2)

	// a late return drops the loan from the overdue view.
	require.NoError(t, f.service.ReturnBook(context.TODO(), member.ID, "ISBN-1"))
	overdue, err = f.service.GetAllOverdueBooks(context.TODO())
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "ISBN-2", overdue[0].BookISBN)
}

// TestLendingService_SearchBooks exercises the three search strategies end to end.
func TestLendingService_SearchBooks(t *testing.T) {
	f := newLendingFixture(t)
	for _, book := range testCatalog() {
		_, err := f.books.Save(context.TODO(), book)
		require.NoError(t, err)
	}

	byTitle, err := f.service.SearchBooksByTitle(context.TODO(), "dune")
	require.NoError(t, err)
	assert.Len(t, byTitle, 2)

	byAuthor, err := f.service.SearchBooksByAuthor(context.TODO(), "tolkien")
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "The Hobbit", byAuthor[0].Title)

	byGenre, err := f.service.SearchBooksByGenre(context.TODO(), "scifi")
	require.NoError(t, err)
	assert.Len(t, byGenre, 2)

	all, err := f.service.SearchBooksByGenre(context.TODO(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
