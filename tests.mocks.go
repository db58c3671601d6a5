package main

import (
	"context"
	"strconv"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	SaveFunc   func(ctx context.Context, book Book) (Book, error)
	GetOneFunc func(ctx context.Context, isbn string) (Book, error)
	GetAllFunc func(ctx context.Context) ([]Book, error)
	DeleteFunc func(ctx context.Context, isbn string) (bool, error)
}

// Save mocks the behavior of book upsert by the storage.
func (m *MockBookStorage) Save(ctx context.Context, book Book) (Book, error) {
	return m.SaveFunc(ctx, book)
}

// GetOne mocks the behavior of retrieving a book by the storage.
func (m *MockBookStorage) GetOne(ctx context.Context, isbn string) (Book, error) {
	return m.GetOneFunc(ctx, isbn)
}

// GetAll mocks the behavior of retrieving all books by the storage.
func (m *MockBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	return m.GetAllFunc(ctx)
}

// Delete mocks the behavior of deleting a book by the storage.
func (m *MockBookStorage) Delete(ctx context.Context, isbn string) (bool, error) {
	return m.DeleteFunc(ctx, isbn)
}

type MockMemberStorage struct {
	SaveFunc   func(ctx context.Context, member Member) (Member, error)
	GetOneFunc func(ctx context.Context, id string) (Member, error)
	GetAllFunc func(ctx context.Context) ([]Member, error)
	DeleteFunc func(ctx context.Context, id string) (bool, error)
}

func (m *MockMemberStorage) Save(ctx context.Context, member Member) (Member, error) {
	return m.SaveFunc(ctx, member)
}

func (m *MockMemberStorage) GetOne(ctx context.Context, id string) (Member, error) {
	return m.GetOneFunc(ctx, id)
}

func (m *MockMemberStorage) GetAll(ctx context.Context) ([]Member, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockMemberStorage) Delete(ctx context.Context, id string) (bool, error) {
	return m.DeleteFunc(ctx, id)
}

type MockTransactionStorage struct {
	SaveFunc            func(ctx context.Context, transaction Transaction) (Transaction, error)
	GetOneFunc          func(ctx context.Context, id string) (Transaction, error)
	GetAllFunc          func(ctx context.Context) ([]Transaction, error)
	DeleteFunc          func(ctx context.Context, id string) (bool, error)
	GetByMemberFunc     func(ctx context.Context, memberID string) ([]Transaction, error)
	GetByBookFunc       func(ctx context.Context, isbn string) ([]Transaction, error)
	GetOpenLoanFunc     func(ctx context.Context, memberID, isbn string) (Transaction, error)
	GetAllOpenLoansFunc func(ctx context.Context) ([]Transaction, error)
}

func (m *MockTransactionStorage) Save(ctx context.Context, transaction Transaction) (Transaction, error) {
	return m.SaveFunc(ctx, transaction)
}

func (m *MockTransactionStorage) GetOne(ctx context.Context, id string) (Transaction, error) {
	return m.GetOneFunc(ctx, id)
}

func (m *MockTransactionStorage) GetAll(ctx context.Context) ([]Transaction, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockTransactionStorage) Delete(ctx context.Context, id string) (bool, error) {
	return m.DeleteFunc(ctx, id)
}

func (m *MockTransactionStorage) GetByMember(ctx context.Context, memberID string) ([]Transaction, error) {
	return m.GetByMemberFunc(ctx, memberID)
}

func (m *MockTransactionStorage) GetByBook(ctx context.Context, isbn string) ([]Transaction, error) {
	return m.GetByBookFunc(ctx, isbn)
}

func (m *MockTransactionStorage) GetOpenLoan(ctx context.Context, memberID, isbn string) (Transaction, error) {
	return m.GetOpenLoanFunc(ctx, memberID, isbn)
}

func (m *MockTransactionStorage) GetAllOpenLoans(ctx context.Context) ([]Transaction, error) {
	return m.GetAllOpenLoansFunc(ctx)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
// This equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 7, 2, 0, 0, 0, 0, time.UTC)}
}

// Now returns an already defined time to be used as mock.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
	Valid     bool
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string, valid bool) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id, Valid: valid}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// IsValid mocks IsValid behavior by providing configured status.
func (muid *MockUIDHandler) IsValid(_, _ string) bool {
	return muid.Valid
}

// MockSequenceUIDHandler mints distinct predictable ids, for tests creating
// several records through the same generator.
type MockSequenceUIDHandler struct {
	sequence int
}

func (muid *MockSequenceUIDHandler) Generate(prefix string) string {
	muid.sequence++
	return prefix + ":" + strconv.Itoa(muid.sequence)
}

func (muid *MockSequenceUIDHandler) IsValid(_, _ string) bool {
	return true
}
