package main

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var _ TransactionStorage = (*memoryTransactionStorage)(nil)

// memoryTransactionStorage is a concurrency safe in-memory ledger of lending
// records keyed by transaction id, with linear-scan secondary lookups by
// member and by book. The ledger only grows, records are closed in place and
// never deleted by the lending service.
type memoryTransactionStorage struct {
	logger       *zap.Logger
	mu           sync.RWMutex
	transactions map[string]Transaction
	order        []string
}

// NewMemoryTransactionStorage provides an instance of in-memory transaction storage.
func NewMemoryTransactionStorage(logger *zap.Logger) TransactionStorage {
	return &memoryTransactionStorage{
		logger:       logger,
		transactions: make(map[string]Transaction),
		order:        []string{},
	}
}

// Save upserts a lending record by its id.
func (ms *memoryTransactionStorage) Save(_ context.Context, transaction Transaction) (Transaction, error) {
	if len(transaction.ID) == 0 {
		return Transaction{}, fmt.Errorf("%w: transaction id is required to save a transaction", ErrInvalidArgument)
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, exists := ms.transactions[transaction.ID]; !exists {
		ms.order = append(ms.order, transaction.ID)
	}
	ms.transactions[transaction.ID] = transaction
	return transaction, nil
}

// GetOne retrieves a lending record based on its id.
func (ms *memoryTransactionStorage) GetOne(_ context.Context, id string) (Transaction, error) {
	if len(id) == 0 {
		return Transaction{}, ErrLoanNotFound
	}
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	transaction, exists := ms.transactions[id]
	if !exists {
		return Transaction{}, ErrLoanNotFound
	}
	return transaction, nil
}

// GetAll retrieves a copy of the ledger in insertion order.
func (ms *memoryTransactionStorage) GetAll(_ context.Context) ([]Transaction, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	transactions := make([]Transaction, 0, len(ms.order))
	for _, id := range ms.order {
		transactions = append(transactions, ms.transactions[id])
	}
	return transactions, nil
}

// Delete removes a lending record and reports whether it existed.
func (ms *memoryTransactionStorage) Delete(_ context.Context, id string) (bool, error) {
	if len(id) == 0 {
		return false, nil
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, exists := ms.transactions[id]; !exists {
		return false, nil
	}
	delete(ms.transactions, id)
	for i, key := range ms.order {
		if key == id {
			ms.order = append(ms.order[:i], ms.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// GetByMember retrieves all lending records, open or closed, for a member.
func (ms *memoryTransactionStorage) GetByMember(_ context.Context, memberID string) ([]Transaction, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	transactions := []Transaction{}
	for _, id := range ms.order {
		if t := ms.transactions[id]; t.MemberID == memberID {
			transactions = append(transactions, t)
		}
	}
	return transactions, nil
}

// GetByBook retrieves all lending records, open or closed, for a book.
func (ms *memoryTransactionStorage) GetByBook(_ context.Context, isbn string) ([]Transaction, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	transactions := []Transaction{}
	for _, id := range ms.order {
		if t := ms.transactions[id]; t.BookISBN == isbn {
			transactions = append(transactions, t)
		}
	}
	return transactions, nil
}

// GetOpenLoan retrieves the open BORROW record for a (member, book) pair.
// The loan uniqueness invariant is enforced at write time by the lending
// service, so the first record encountered is the only one expected.
func (ms *memoryTransactionStorage) GetOpenLoan(_ context.Context, memberID, isbn string) (Transaction, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	for _, id := range ms.order {
		t := ms.transactions[id]
		if t.MemberID == memberID && t.BookISBN == isbn && t.IsOpen() {
			return t, nil
		}
	}
	return Transaction{}, ErrLoanNotFound
}

// GetAllOpenLoans retrieves every open BORROW record across all members and books.
func (ms *memoryTransactionStorage) GetAllOpenLoans(_ context.Context) ([]Transaction, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	transactions := []Transaction{}
	for _, id := range ms.order {
		if t := ms.transactions[id]; t.IsOpen() {
			transactions = append(transactions, t)
		}
	}
	return transactions, nil
}
