package main

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// LendingServiceProvider exposes the lending engine operations. It is the
// only component holding cross-entity invariants: the available-copy count
// and the at-most-one-open-loan-per-book-per-member rule.
type LendingServiceProvider interface {
	AddBook(ctx context.Context, title, authorFirstName, authorLastName, isbn, genre string, publicationYear, initialCopies int) (Book, error)
	FindBookByISBN(ctx context.Context, isbn string) (Book, error)
	GetAllBooks(ctx context.Context) ([]Book, error)
	RemoveBookByISBN(ctx context.Context, isbn string) (bool, error)

	RegisterMember(ctx context.Context, name, contactInfo string) (Member, error)
	FindMemberByID(ctx context.Context, memberID string) (Member, error)
	GetAllMembers(ctx context.Context) ([]Member, error)

	BorrowBook(ctx context.Context, memberID, isbn string) error
	ReturnBook(ctx context.Context, memberID, isbn string) error
	GetBorrowedBooksByMember(ctx context.Context, memberID string) ([]Transaction, error)
	GetAllOverdueBooks(ctx context.Context) ([]Transaction, error)

	SearchBooksByTitle(ctx context.Context, query string) ([]Book, error)
	SearchBooksByAuthor(ctx context.Context, query string) ([]Book, error)
	SearchBooksByGenre(ctx context.Context, query string) ([]Book, error)
}

type LendingService struct {
	logger       *zap.Logger
	config       *Config
	clock        Clocker
	ids          UIDHandler
	books        BookStorage
	members      MemberStorage
	transactions TransactionStorage
}

func NewLendingService(logger *zap.Logger, config *Config, clock Clocker, ids UIDHandler, books BookStorage, members MemberStorage, transactions TransactionStorage) LendingServiceProvider {
	return &LendingService{
		logger:       logger,
		config:       config,
		clock:        clock,
		ids:          ids,
		books:        books,
		members:      members,
		transactions: transactions,
	}
}

// AddBook validates and upserts a catalog entry keyed by its ISBN.
func (ls *LendingService) AddBook(ctx context.Context, title, authorFirstName, authorLastName, isbn, genre string, publicationYear, initialCopies int) (Book, error) {
	book, err := NewBook(title, authorFirstName, authorLastName, isbn, genre, publicationYear, initialCopies)
	if err != nil {
		ls.logger.Warn("service: rejected invalid book", zap.String("book.isbn", isbn), zap.Error(err))
		return Book{}, err
	}
	ls.logger.Info("service: adding book", zap.String("book.isbn", book.ISBN), zap.String("book.title", book.Title))
	return ls.books.Save(ctx, book)
}

func (ls *LendingService) FindBookByISBN(ctx context.Context, isbn string) (Book, error) {
	return ls.books.GetOne(ctx, isbn)
}

func (ls *LendingService) GetAllBooks(ctx context.Context) ([]Book, error) {
	return ls.books.GetAll(ctx)
}

// RemoveBookByISBN deletes a catalog entry. A missing entry is reported as
// false, not as an error.
func (ls *LendingService) RemoveBookByISBN(ctx context.Context, isbn string) (bool, error) {
	deleted, err := ls.books.Delete(ctx, isbn)
	if err != nil {
		return false, err
	}
	ls.logger.Info("service: removed book", zap.String("book.isbn", isbn), zap.Bool("book.deleted", deleted))
	return deleted, nil
}

// RegisterMember mints a fresh member id and saves the new member record.
func (ls *LendingService) RegisterMember(ctx context.Context, name, contactInfo string) (Member, error) {
	member, err := NewMember(ls.ids.Generate(MemberIDPrefix), name, contactInfo)
	if err != nil {
		ls.logger.Warn("service: rejected invalid member", zap.Error(err))
		return Member{}, err
	}
	ls.logger.Info("service: registering member", zap.String("member.id", member.ID), zap.String("member.name", member.Name))
	return ls.members.Save(ctx, member)
}

func (ls *LendingService) FindMemberByID(ctx context.Context, memberID string) (Member, error) {
	return ls.members.GetOne(ctx, memberID)
}

func (ls *LendingService) GetAllMembers(ctx context.Context) ([]Member, error) {
	return ls.members.GetAll(ctx)
}

// BorrowBook opens a loan for a (member, book) pair. All preconditions are
// checked before any store mutation: the member and the book must exist, the
// member must not already hold an open loan on that book and at least one
// copy must be available. The copy decrement and the transaction write are
// two separate store writes, a failure between them is surfaced as an
// OperationFailedError without rolling back the decrement.
func (ls *LendingService) BorrowBook(ctx context.Context, memberID, isbn string) error {
	member, err := ls.members.GetOne(ctx, memberID)
	if err != nil {
		ls.logger.Warn("service: borrow failed, member unknown", zap.String("member.id", memberID), zap.String("book.isbn", isbn))
		return err
	}

	book, err := ls.books.GetOne(ctx, isbn)
	if err != nil {
		ls.logger.Warn("service: borrow failed, book unknown", zap.String("member.id", memberID), zap.String("book.isbn", isbn))
		return err
	}

	if _, err = ls.transactions.GetOpenLoan(ctx, memberID, isbn); err == nil {
		ls.logger.Warn("service: borrow failed, loan already open", zap.String("member.id", memberID), zap.String("book.isbn", isbn))
		return ErrBookAlreadyBorrowed
	} else if !errors.Is(err, ErrLoanNotFound) {
		return err
	}

	if book.AvailableCopies <= 0 {
		ls.logger.Warn("service: borrow failed, no copies available", zap.String("member.id", memberID), zap.String("book.isbn", isbn))
		return ErrNoCopiesAvailable
	}

	book.AvailableCopies--
	if _, err = ls.books.Save(ctx, book); err != nil {
		return &OperationFailedError{Op: "borrow", Err: err}
	}

	now := ls.clock.Now()
	dueDate := DateOf(now).AddDate(0, 0, ls.config.Lending.LoanDurationDays)
	transaction, err := NewBorrowTransaction(ls.ids.Generate(TransactionIDPrefix), isbn, memberID, now, dueDate)
	if err == nil {
		_, err = ls.transactions.Save(ctx, transaction)
	}
	if err != nil {
		// The copy count was already decremented. State needs manual reconciliation.
		ls.logger.Error("service: borrow left partial state, copy decremented without loan record",
			zap.String("member.id", memberID), zap.String("book.isbn", isbn), zap.Error(err))
		return &OperationFailedError{Op: "borrow", Err: err}
	}

	ls.logger.Info("service: book borrowed",
		zap.String("member.id", memberID),
		zap.String("member.name", member.Name),
		zap.String("book.isbn", isbn),
		zap.String("book.title", book.Title),
		zap.Time("loan.due", transaction.DueDate),
		zap.Int("book.copies", book.AvailableCopies),
	)
	return nil
}

// ReturnBook closes the open loan for a (member, book) pair. A late return is
// reported through a distinguishable warn notification, never as an error.
// Like BorrowBook, the copy increment and the transaction update are separate
// writes with no rollback in between.
func (ls *LendingService) ReturnBook(ctx context.Context, memberID, isbn string) error {
	if _, err := ls.members.GetOne(ctx, memberID); err != nil {
		ls.logger.Warn("service: return failed, member unknown", zap.String("member.id", memberID), zap.String("book.isbn", isbn))
		return err
	}

	book, err := ls.books.GetOne(ctx, isbn)
	if err != nil {
		ls.logger.Warn("service: return failed, book not in catalog", zap.String("member.id", memberID), zap.String("book.isbn", isbn))
		return err
	}

	loan, err := ls.transactions.GetOpenLoan(ctx, memberID, isbn)
	if errors.Is(err, ErrLoanNotFound) {
		ls.logger.Warn("service: return failed, no open loan", zap.String("member.id", memberID), zap.String("book.isbn", isbn))
		return ErrBookNotBorrowed
	}
	if err != nil {
		return err
	}

	book.AvailableCopies++
	if _, err = ls.books.Save(ctx, book); err != nil {
		return &OperationFailedError{Op: "return", Err: err}
	}

	now := ls.clock.Now()
	late := loan.IsOverdue(now)
	loan.ReturnedAt = &now
	if _, err = ls.transactions.Save(ctx, loan); err != nil {
		// The copy count was already incremented. State needs manual reconciliation.
		ls.logger.Error("service: return left partial state, copy incremented without closing loan",
			zap.String("member.id", memberID), zap.String("book.isbn", isbn), zap.Error(err))
		return &OperationFailedError{Op: "return", Err: err}
	}

	ls.logger.Info("service: book returned",
		zap.String("member.id", memberID),
		zap.String("book.isbn", isbn),
		zap.String("book.title", book.Title),
		zap.Int("book.copies", book.AvailableCopies),
	)
	if late {
		ls.logger.Warn("service: book returned late",
			zap.String("member.id", memberID),
			zap.String("book.isbn", isbn),
			zap.Time("loan.due", loan.DueDate),
			zap.Time("loan.returned", now),
		)
	}
	return nil
}

// GetBorrowedBooksByMember lists the open loans of a member.
func (ls *LendingService) GetBorrowedBooksByMember(ctx context.Context, memberID string) ([]Transaction, error) {
	if _, err := ls.members.GetOne(ctx, memberID); err != nil {
		return nil, err
	}
	transactions, err := ls.transactions.GetByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	open := []Transaction{}
	for _, t := range transactions {
		if t.IsOpen() {
			open = append(open, t)
		}
	}
	return open, nil
}

// GetAllOverdueBooks lists every open loan whose due date has passed.
func (ls *LendingService) GetAllOverdueBooks(ctx context.Context) ([]Transaction, error) {
	open, err := ls.transactions.GetAllOpenLoans(ctx)
	if err != nil {
		return nil, err
	}
	now := ls.clock.Now()
	overdue := []Transaction{}
	for _, t := range open {
		if t.IsOverdue(now) {
			overdue = append(overdue, t)
		}
	}
	return overdue, nil
}

func (ls *LendingService) SearchBooksByTitle(ctx context.Context, query string) ([]Book, error) {
	return ls.searchBooks(ctx, SearchByTitle, query)
}

func (ls *LendingService) SearchBooksByAuthor(ctx context.Context, query string) ([]Book, error) {
	return ls.searchBooks(ctx, SearchByAuthor, query)
}

func (ls *LendingService) SearchBooksByGenre(ctx context.Context, query string) ([]Book, error) {
	return ls.searchBooks(ctx, SearchByGenre, query)
}

// searchBooks snapshots the catalog then applies the selected matching strategy.
func (ls *LendingService) searchBooks(ctx context.Context, field SearchField, query string) ([]Book, error) {
	match, err := MatcherFor(field)
	if err != nil {
		return nil, err
	}
	books, err := ls.books.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterBooks(books, match, query), nil
}
