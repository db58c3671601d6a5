package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
)

// Failure kinds surfaced by the lending engine. Callers branch on these with
// errors.Is, never on message text. All of them are detected before any store
// mutation happens.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrBookNotFound        = errors.New("book not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrBookAlreadyBorrowed = errors.New("book already borrowed by member")
	ErrNoCopiesAvailable   = errors.New("no copies available")
	ErrBookNotBorrowed     = errors.New("book not borrowed by member")
)

// OperationFailedError reports a store write which failed after an earlier
// mutation of the same operation already succeeded. No rollback is attempted,
// the partial state is surfaced for manual reconciliation.
type OperationFailedError struct {
	Op  string
	Err error
}

func (e *OperationFailedError) Error() string {
	return "operation " + e.Op + " failed: " + e.Err.Error()
}

func (e *OperationFailedError) Unwrap() error {
	return e.Err
}

type ContextKey string

const (
	MemberIDPrefix      string     = "m"
	TransactionIDPrefix string     = "t"
	RequestIDPrefix     string     = "r"
	ContextRequestID    ContextKey = "request.id"
	ContextRequestNum   ContextKey = "request.number"
)

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// DecodeRequestBody reads a json request payload into the provided target.
func DecodeRequestBody(r *http.Request, target interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("%w: request body is required", ErrInvalidArgument)
	}
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}
	return nil
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result. This
// helps know if the App is running in a docker container or not.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
