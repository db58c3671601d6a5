package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// CreateBookRequest is the payload expected to add a catalog entry.
type CreateBookRequest struct {
	Title           string `json:"title"`
	AuthorFirstName string `json:"authorFirstName"`
	AuthorLastName  string `json:"authorLastName"`
	ISBN            string `json:"isbn"`
	Genre           string `json:"genre"`
	PublicationYear int    `json:"publicationYear"`
	Copies          int    `json:"copies"`
}

// CreateBook adds a book to the catalog. Adding an ISBN which already exists
// replaces the previous catalog entry.
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	var payload CreateBookRequest
	if err := DecodeRequestBody(r, &payload); err != nil {
		api.Fail(w, r, "failed to create the book", err)
		return
	}

	book, err := api.library.AddBook(r.Context(), payload.Title, payload.AuthorFirstName, payload.AuthorLastName,
		payload.ISBN, payload.Genre, payload.PublicationYear, payload.Copies)
	if err != nil {
		api.Fail(w, r, "failed to create the book", err, zap.String("book.isbn", payload.ISBN))
		return
	}
	resp := GenericResponse(requestID, http.StatusCreated, "Book created successfully.", nil, book)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetAllBooks fetches the full catalog snapshot.
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	books, err := api.library.GetAllBooks(r.Context())
	if err != nil {
		api.Fail(w, r, "failed to get all books", err)
		return
	}
	api.logger.Info("success to get all books", zap.String("request.id", requestID))
	total := len(books)
	resp := GenericResponse(requestID, http.StatusOK, "All books fetched successfully.", &total, books)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.Error(err))
	}
}

// GetOneBook fetches a single catalog entry by its ISBN.
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	isbn := ps.ByName("isbn")
	book, err := api.library.FindBookByISBN(r.Context(), isbn)
	if err != nil {
		api.Fail(w, r, "failed to get the book", err, zap.String("book.isbn", isbn))
		return
	}
	api.logger.Info("success to get book", zap.String("book.isbn", isbn), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Book fetched successfully.", nil, book)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// DeleteOneBook removes a catalog entry by its ISBN. Removing an unknown ISBN
// is reported as a not found response rather than a failure.
func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	isbn := ps.ByName("isbn")
	deleted, err := api.library.RemoveBookByISBN(r.Context(), isbn)
	if err != nil {
		api.Fail(w, r, "failed to delete the book", err, zap.String("book.isbn", isbn))
		return
	}
	if !deleted {
		api.Fail(w, r, "book does not exist", ErrBookNotFound, zap.String("book.isbn", isbn))
		return
	}
	api.logger.Info("success to delete book", zap.String("book.isbn", isbn), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Book deleted successfully.", nil, EmptyData)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// SearchBooks filters the catalog with one of the matching strategies.
// Expected query parameters: by={title|author|genre} and q=<substring>.
// An empty q returns the full catalog snapshot.
func (api *APIHandler) SearchBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	field := SearchField(r.URL.Query().Get("by"))
	query := r.URL.Query().Get("q")

	var books []Book
	var err error
	switch field {
	case SearchByTitle:
		books, err = api.library.SearchBooksByTitle(r.Context(), query)
	case SearchByAuthor:
		books, err = api.library.SearchBooksByAuthor(r.Context(), query)
	case SearchByGenre:
		books, err = api.library.SearchBooksByGenre(r.Context(), query)
	default:
		_, err = MatcherFor(field)
	}
	if err != nil {
		api.Fail(w, r, "failed to search books", err, zap.String("search.by", string(field)))
		return
	}
	api.logger.Info("success to search books",
		zap.String("request.id", requestID),
		zap.String("search.by", string(field)),
		zap.String("search.query", query),
	)
	total := len(books)
	resp := GenericResponse(requestID, http.StatusOK, "Books searched successfully.", &total, books)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
