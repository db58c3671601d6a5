package main

import (
	"context"
	"fmt"
)

// Author holds the name of a book author.
type Author struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// NewAuthor builds an author after checking both name parts are provided.
func NewAuthor(firstName, lastName string) (Author, error) {
	if len(firstName) == 0 {
		return Author{}, fmt.Errorf("%w: author first name is required", ErrInvalidArgument)
	}
	if len(lastName) == 0 {
		return Author{}, fmt.Errorf("%w: author last name is required", ErrInvalidArgument)
	}
	return Author{FirstName: firstName, LastName: lastName}, nil
}

// FullName provides the display name used by author search.
func (a Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Book represents a catalog entry. The ISBN is its identity. AvailableCopies
// is mutated only by borrow (minus one) and return (plus one) and never goes
// below zero.
type Book struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          Author `json:"author"`
	Genre           string `json:"genre"`
	PublicationYear int    `json:"publicationYear"`
	AvailableCopies int    `json:"availableCopies"`
}

// NewBook builds a catalog entry and rejects malformed input
// before anything reaches a store.
func NewBook(title, authorFirstName, authorLastName, isbn, genre string, publicationYear, initialCopies int) (Book, error) {
	if len(isbn) == 0 {
		return Book{}, fmt.Errorf("%w: isbn is required", ErrInvalidArgument)
	}
	if len(title) == 0 {
		return Book{}, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	author, err := NewAuthor(authorFirstName, authorLastName)
	if err != nil {
		return Book{}, err
	}
	if initialCopies < 0 {
		return Book{}, fmt.Errorf("%w: initial copies cannot be negative", ErrInvalidArgument)
	}
	return Book{
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		Genre:           genre,
		PublicationYear: publicationYear,
		AvailableCopies: initialCopies,
	}, nil
}

// BookStorage defines possible operations on catalog entries.
type BookStorage interface {
	Save(ctx context.Context, book Book) (Book, error)
	GetOne(ctx context.Context, isbn string) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	Delete(ctx context.Context, isbn string) (bool, error)
}
