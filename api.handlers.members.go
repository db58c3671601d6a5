package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// RegisterMemberRequest is the payload expected to register a member.
type RegisterMemberRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contactInfo"`
}

// RegisterMember registers a new member and returns the record with its
// generated id.
func (api *APIHandler) RegisterMember(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	var payload RegisterMemberRequest
	if err := DecodeRequestBody(r, &payload); err != nil {
		api.Fail(w, r, "failed to register the member", err)
		return
	}

	member, err := api.library.RegisterMember(r.Context(), payload.Name, payload.ContactInfo)
	if err != nil {
		api.Fail(w, r, "failed to register the member", err)
		return
	}
	api.logger.Info("success to register member", zap.String("member.id", member.ID), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusCreated, "Member registered successfully.", nil, member)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetAllMembers fetches all registered members.
func (api *APIHandler) GetAllMembers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	members, err := api.library.GetAllMembers(r.Context())
	if err != nil {
		api.Fail(w, r, "failed to get all members", err)
		return
	}
	total := len(members)
	resp := GenericResponse(requestID, http.StatusOK, "All members fetched successfully.", &total, members)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetOneMember fetches a single member record by its id.
func (api *APIHandler) GetOneMember(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id := ps.ByName("id")
	if ok := api.ids.IsValid(id, MemberIDPrefix); !ok {
		api.Fail(w, r, "member id provided is not valid", ErrMemberNotFound, zap.String("member.id", id))
		return
	}
	member, err := api.library.FindMemberByID(r.Context(), id)
	if err != nil {
		api.Fail(w, r, "failed to get the member", err, zap.String("member.id", id))
		return
	}
	resp := GenericResponse(requestID, http.StatusOK, "Member fetched successfully.", nil, member)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetMemberLoans fetches the open loans of a member.
func (api *APIHandler) GetMemberLoans(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id := ps.ByName("id")
	loans, err := api.library.GetBorrowedBooksByMember(r.Context(), id)
	if err != nil {
		api.Fail(w, r, "failed to get the member loans", err, zap.String("member.id", id))
		return
	}
	total := len(loans)
	resp := GenericResponse(requestID, http.StatusOK, "Member loans fetched successfully.", &total, loans)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
