package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// LoanRequest is the payload expected to borrow or return a book.
type LoanRequest struct {
	MemberID string `json:"memberId"`
	ISBN     string `json:"isbn"`
}

// BorrowBook opens a loan for a (member, book) pair. Success carries no data,
// the new loan is observable through the member loans endpoint.
func (api *APIHandler) BorrowBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	var payload LoanRequest
	if err := DecodeRequestBody(r, &payload); err != nil {
		api.Fail(w, r, "failed to borrow the book", err)
		return
	}

	if err := api.library.BorrowBook(r.Context(), payload.MemberID, payload.ISBN); err != nil {
		api.Fail(w, r, "failed to borrow the book", err,
			zap.String("member.id", payload.MemberID), zap.String("book.isbn", payload.ISBN))
		return
	}
	api.logger.Info("success to borrow book",
		zap.String("member.id", payload.MemberID),
		zap.String("book.isbn", payload.ISBN),
		zap.String("request.id", requestID),
	)
	resp := GenericResponse(requestID, http.StatusCreated, "Book borrowed successfully.", nil, EmptyData)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// ReturnBook closes the open loan for a (member, book) pair.
func (api *APIHandler) ReturnBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	var payload LoanRequest
	if err := DecodeRequestBody(r, &payload); err != nil {
		api.Fail(w, r, "failed to return the book", err)
		return
	}

	if err := api.library.ReturnBook(r.Context(), payload.MemberID, payload.ISBN); err != nil {
		api.Fail(w, r, "failed to return the book", err,
			zap.String("member.id", payload.MemberID), zap.String("book.isbn", payload.ISBN))
		return
	}
	api.logger.Info("success to return book",
		zap.String("member.id", payload.MemberID),
		zap.String("book.isbn", payload.ISBN),
		zap.String("request.id", requestID),
	)
	resp := GenericResponse(requestID, http.StatusOK, "Book returned successfully.", nil, EmptyData)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetOverdueLoans fetches every open loan whose due date has passed.
func (api *APIHandler) GetOverdueLoans(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	overdue, err := api.library.GetAllOverdueBooks(r.Context())
	if err != nil {
		api.Fail(w, r, "failed to get overdue loans", err)
		return
	}
	total := len(overdue)
	resp := GenericResponse(requestID, http.StatusOK, "Overdue loans fetched successfully.", &total, overdue)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
