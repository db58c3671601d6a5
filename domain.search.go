package main

import (
	"fmt"
	"strings"
)

// SearchField tags one of the interchangeable catalog matching strategies.
type SearchField string

const (
	SearchByTitle  SearchField = "title"
	SearchByAuthor SearchField = "author"
	SearchByGenre  SearchField = "genre"
)

// BookMatcher reports whether a book matches a search query.
type BookMatcher func(book Book, query string) bool

func matchTitle(book Book, query string) bool {
	return containsFold(book.Title, query)
}

func matchAuthor(book Book, query string) bool {
	return containsFold(book.Author.FullName(), query)
}

func matchGenre(book Book, query string) bool {
	return containsFold(book.Genre, query)
}

func containsFold(field, query string) bool {
	return strings.Contains(strings.ToLower(field), strings.ToLower(query))
}

// MatcherFor selects the matching strategy for a given search field.
func MatcherFor(field SearchField) (BookMatcher, error) {
	switch field {
	case SearchByTitle:
		return matchTitle, nil
	case SearchByAuthor:
		return matchAuthor, nil
	case SearchByGenre:
		return matchGenre, nil
	default:
		return nil, fmt.Errorf("%w: unknown search field %q", ErrInvalidArgument, field)
	}
}

// FilterBooks applies a matching strategy over a catalog snapshot. An empty
// query returns the snapshot unfiltered instead of an empty result.
func FilterBooks(books []Book, match BookMatcher, query string) []Book {
	if len(query) == 0 {
		return books
	}
	matched := []Book{}
	for _, book := range books {
		if match(book, query) {
			matched = append(matched, book)
		}
	}
	return matched
}
