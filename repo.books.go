package main

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var _ BookStorage = (*memoryBookStorage)(nil)

// memoryBookStorage is a concurrency safe in-memory catalog keyed by ISBN.
// Readers share the lock, a writer excludes everyone for the duration of the
// single map mutation. Entries are stored by value so callers never alias the
// stored state.
type memoryBookStorage struct {
	logger *zap.Logger
	mu     sync.RWMutex
	books  map[string]Book
	order  []string
}

// NewMemoryBookStorage provides an instance of in-memory book storage.
func NewMemoryBookStorage(logger *zap.Logger) BookStorage {
	return &memoryBookStorage{
		logger: logger,
		books:  make(map[string]Book),
		order:  []string{},
	}
}

// Save upserts a catalog entry by its ISBN.
func (ms *memoryBookStorage) Save(_ context.Context, book Book) (Book, error) {
	if len(book.ISBN) == 0 {
		return Book{}, fmt.Errorf("%w: isbn is required to save a book", ErrInvalidArgument)
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, exists := ms.books[book.ISBN]; !exists {
		ms.order = append(ms.order, book.ISBN)
	}
	ms.books[book.ISBN] = book
	return book, nil
}

// GetOne retrieves a catalog entry based on its ISBN.
func (ms *memoryBookStorage) GetOne(_ context.Context, isbn string) (Book, error) {
	if len(isbn) == 0 {
		return Book{}, ErrBookNotFound
	}
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	book, exists := ms.books[isbn]
	if !exists {
		return Book{}, ErrBookNotFound
	}
	return book, nil
}

// GetAll retrieves a copy of the catalog in insertion order.
func (ms *memoryBookStorage) GetAll(_ context.Context) ([]Book, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	books := make([]Book, 0, len(ms.order))
	for _, isbn := range ms.order {
		books = append(books, ms.books[isbn])
	}
	return books, nil
}

// Delete removes a catalog entry and reports whether it existed.
func (ms *memoryBookStorage) Delete(_ context.Context, isbn string) (bool, error) {
	if len(isbn) == 0 {
		return false, nil
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, exists := ms.books[isbn]; !exists {
		return false, nil
	}
	delete(ms.books, isbn)
	for i, key := range ms.order {
		if key == isbn {
			ms.order = append(ms.order[:i], ms.order[i+1:]...)
			break
		}
	}
	return true, nil
}
