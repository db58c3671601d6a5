package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []Book {
	return []Book{
		{ISBN: "ISBN-1", Title: "Dune", Author: Author{FirstName: "Frank", LastName: "Herbert"}, Genre: "SciFi"},
		{ISBN: "ISBN-2", Title: "Dune Messiah", Author: Author{FirstName: "Frank", LastName: "Herbert"}, Genre: "SciFi"},
		{ISBN: "ISBN-3", Title: "The Hobbit", Author: Author{FirstName: "John", LastName: "Tolkien"}, Genre: "Fantasy"},
	}
}

// TestMatcherFor ensures each search field selects a strategy and unknown
// fields are rejected.
func TestMatcherFor(t *testing.T) {
	for _, field := range []SearchField{SearchByTitle, SearchByAuthor, SearchByGenre} {
		match, err := MatcherFor(field)
		require.NoError(t, err)
		require.NotNil(t, match)
	}

	_, err := MatcherFor(SearchField("publisher"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestFilterBooks ensures matching is a case-insensitive substring check and
// an empty query returns the unfiltered snapshot.
func TestFilterBooks(t *testing.T) {
	books := testCatalog()

	testCases := []struct {
		name  string
		field SearchField
		query string
		want  []string
	}{
		{"title match", SearchByTitle, "dune", []string{"ISBN-1", "ISBN-2"}},
		{"title exact", SearchByTitle, "The Hobbit", []string{"ISBN-3"}},
		{"author full name", SearchByAuthor, "frank herbert", []string{"ISBN-1", "ISBN-2"}},
		{"author last name part", SearchByAuthor, "tolk", []string{"ISBN-3"}},
		{"genre match", SearchByGenre, "fantasy", []string{"ISBN-3"}},
		{"no match", SearchByTitle, "dosadi", []string{}},
		{"empty query returns all", SearchByGenre, "", []string{"ISBN-1", "ISBN-2", "ISBN-3"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			match, err := MatcherFor(tc.field)
			require.NoError(t, err)
			got := FilterBooks(books, match, tc.query)
			isbns := []string{}
			for _, book := range got {
				isbns = append(isbns, book.ISBN)
			}
			assert.Equal(t, tc.want, isbns)
		})
	}
}
