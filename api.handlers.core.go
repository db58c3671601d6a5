package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

var EmptyData = struct{}{}

// Statistics holds app stats for ops.
type Statistics struct {
	version   string
	container bool
	runtime   string
	platform  string
	called    uint64
	started   time.Time
}

// Maintenance holds app maintenance mode infos.
type Maintenance struct {
	enabled atomic.Bool
	message string
	started time.Time
}

// APIHandler defines the API handler.
type APIHandler struct {
	logger  *zap.Logger
	config  *Config
	stats   *Statistics
	mode    *Maintenance
	clock   Clocker
	ids     UIDHandler
	library LendingServiceProvider
}

// NewAPIHandler provides a new instance of APIHandler.
func NewAPIHandler(logger *zap.Logger, config *Config, stats *Statistics, clock Clocker, ids UIDHandler, library LendingServiceProvider) *APIHandler {
	m := &Maintenance{}
	m.enabled.Store(false)
	return &APIHandler{logger: logger, config: config, stats: stats, mode: m, clock: clock, ids: ids, library: library}
}

// MiddlewaresStacks builds the middlewares chains used for
// public-facing and for internal ops endpoints.
func (api *APIHandler) MiddlewaresStacks() (*Middlewares, *Middlewares) {
	public := Middlewares{
		api.PanicRecoveryMiddleware,
		api.RequestsCounterMiddleware,
		api.RequestIDMiddleware,
		CORSMiddleware,
		api.MaintenanceModeMiddleware,
		api.CoreMiddleware,
	}
	ops := Middlewares{
		api.PanicRecoveryMiddleware,
		api.RequestsCounterMiddleware,
		api.RequestIDMiddleware,
		CORSMiddleware,
		api.CoreMiddleware,
	}
	return &public, &ops
}

// StatusFromError maps an engine failure kind to the HTTP status code sent to
// clients. Handlers branch on error kinds, never on message text.
func StatusFromError(err error) int {
	var opErr *OperationFailedError
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrBookNotFound), errors.Is(err, ErrMemberNotFound), errors.Is(err, ErrLoanNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBookAlreadyBorrowed), errors.Is(err, ErrNoCopiesAvailable), errors.Is(err, ErrBookNotBorrowed):
		return http.StatusConflict
	case errors.As(err, &opErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Fail logs the failure then sends the matching error response to the client.
func (api *APIHandler) Fail(w http.ResponseWriter, r *http.Request, message string, err error, fields ...zap.Field) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	fields = append(fields, zap.String("request.id", requestID), zap.Error(err))
	api.logger.Error(message, fields...)
	errResp := NewAPIError(requestID, StatusFromError(err), message, err.Error())
	if werr := WriteErrorResponse(r.Context(), w, errResp); werr != nil {
		api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(werr))
	}
}

// Index provides same details like `Status` handler by redirecting the request.
func (api *APIHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.Redirect(w, r, "/status", http.StatusSeeOther)
}

// Status provides basics details about the application to the public users.
func (api *APIHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if err := json.NewEncoder(w).Encode(
		map[string]interface{}{
			"requestid": requestID,
			"status":    fmt.Sprintf("up & running since %.0f mins", api.clock.Now().Sub(api.stats.started).Minutes()),
			"message":   "Hello. Library lending api is available. Enjoy :)",
		},
	); err != nil {
		api.logger.Error("failed to send status response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// NotFound replies to requests targeting unknown routes.
func (api *APIHandler) NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		w.WriteHeader(http.StatusNotFound)
		if err := json.NewEncoder(w).Encode(
			map[string]string{
				"message": "route does not exist",
				"path":    r.URL.Path,
			},
		); err != nil {
			api.logger.Error("failed to send not found response", zap.Error(err))
		}
	})
}
