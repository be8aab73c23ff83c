package keyline

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrorKind is the closed classification every API failure maps into.
// Callers branch on kinds, never on raw status codes.
type ErrorKind string

// Error kinds.
const (
	ErrorKindNotFound         ErrorKind = "not_found"
	ErrorKindValidationFailed ErrorKind = "validation_failed"
	ErrorKindUnauthorized     ErrorKind = "unauthorized"
	ErrorKindForbidden        ErrorKind = "forbidden"
	ErrorKindConflict         ErrorKind = "conflict"
	ErrorKindRateLimited      ErrorKind = "rate_limited"
	ErrorKindServerError      ErrorKind = "server_error"
	ErrorKindNetworkError     ErrorKind = "network_error"
)

// ErrorSource locates the request element an error refers to. Pointer is a
// JSON pointer into the request document, Parameter names a query parameter.
type ErrorSource struct {
	Pointer   string `json:"pointer,omitempty"   yaml:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty" yaml:"parameter,omitempty"`
}

// ErrorObject is one error entry from the API's error envelope.
type ErrorObject struct {
	ID     string       `json:"id,omitempty"     yaml:"id,omitempty"`
	Status string       `json:"status,omitempty" yaml:"status,omitempty"`
	Code   string       `json:"code,omitempty"   yaml:"code,omitempty"`
	Title  string       `json:"title"            yaml:"title"`
	Detail string       `json:"detail"           yaml:"detail"`
	Source *ErrorSource `json:"source,omitempty" yaml:"source,omitempty"`
	Links  Links        `json:"links,omitempty"  yaml:"links,omitempty"`
}

// Error implements the error interface.
func (e *ErrorObject) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (code: %s)", e.Title, e.Detail, e.Code)
	}

	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

// ErrorDocument is the wire shape of an API error response.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors" yaml:"errors"`
}

// ParseErrorDocument parses an error envelope from a response body.
func ParseErrorDocument(data []byte) (*ErrorDocument, error) {
	var doc ErrorDocument

	err := json.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal error document: %w", err)
	}

	return &doc, nil
}

// APIError is the single error type returned for every failed API call. All
// failures, including transport ones, surface through it so callers have one
// thing to branch on.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Errors     []ErrorObject
	// RetryAfter carries the server's Retry-After hint on rate limits;
	// zero when the server sent none.
	RetryAfter time.Duration
	// Err holds the underlying transport error for network failures.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Kind == ErrorKindNetworkError {
		if e.Err != nil {
			return fmt.Sprintf("network error: %v", e.Err)
		}

		return "network error"
	}

	first := e.FirstError()
	if first == nil {
		return fmt.Sprintf("%s (status: %d)", e.Kind, e.StatusCode)
	}

	return fmt.Sprintf("%s (status: %d)", first.Error(), e.StatusCode)
}

// Unwrap exposes the underlying transport error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// FirstError returns the first error object or nil.
func (e *APIError) FirstError() *ErrorObject {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// Pointer returns the first error's JSON pointer into the request document,
// or the empty string.
func (e *APIError) Pointer() string {
	first := e.FirstError()
	if first == nil || first.Source == nil {
		return ""
	}

	return first.Source.Pointer
}

// Parameter returns the query parameter the first error refers to, or the
// empty string.
func (e *APIError) Parameter() string {
	first := e.FirstError()
	if first == nil || first.Source == nil {
		return ""
	}

	return first.Source.Parameter
}

// NewAPIError classifies a non-2xx response into an APIError. Statuses
// outside the known set become ValidationFailed when the body carried a
// parseable error envelope and ServerError otherwise.
func NewAPIError(statusCode int, errs []ErrorObject, retryAfter time.Duration) *APIError {
	return &APIError{
		Kind:       classify(statusCode, errs),
		StatusCode: statusCode,
		Errors:     errs,
		RetryAfter: retryAfter,
	}
}

// NewNetworkError wraps a transport failure that produced no parseable
// response.
func NewNetworkError(err error) *APIError {
	return &APIError{
		Kind: ErrorKindNetworkError,
		Err:  err,
	}
}

// ClassifyResponse turns a non-2xx response into the APIError callers see.
// An empty body classifies by status alone; a body that is not a well-formed
// error envelope becomes a NetworkError carrying the status code, so callers
// can tell a mangled reply from a server that answered properly.
func ClassifyResponse(statusCode int, header http.Header, body []byte) *APIError {
	retryAfter := parseRetryAfter(header.Get("Retry-After"))

	if len(body) == 0 {
		return NewAPIError(statusCode, nil, retryAfter)
	}

	doc, err := ParseErrorDocument(body)
	if err != nil {
		apiErr := NewNetworkError(fmt.Errorf("malformed error response: %w", err))
		apiErr.StatusCode = statusCode

		return apiErr
	}

	return NewAPIError(statusCode, doc.Errors, retryAfter)
}

// parseRetryAfter accepts both the delta-seconds and HTTP-date forms.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}

		return time.Duration(seconds) * time.Second
	}

	if when, err := http.ParseTime(value); err == nil {
		if until := time.Until(when); until > 0 {
			return until
		}
	}

	return 0
}

func classify(statusCode int, errs []ErrorObject) ErrorKind {
	switch {
	case statusCode == 401:
		return ErrorKindUnauthorized
	case statusCode == 403:
		return ErrorKindForbidden
	case statusCode == 404:
		return ErrorKindNotFound
	case statusCode == 409:
		return ErrorKindConflict
	case statusCode == 422:
		return ErrorKindValidationFailed
	case statusCode == 429:
		return ErrorKindRateLimited
	case statusCode >= 500:
		return ErrorKindServerError
	case len(errs) > 0:
		return ErrorKindValidationFailed
	default:
		return ErrorKindServerError
	}
}

func hasKind(err error, kind ErrorKind) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}

	return false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasKind(err, ErrorKindNotFound)
}

// IsValidationFailed checks if the error is a validation error.
func IsValidationFailed(err error) bool {
	return hasKind(err, ErrorKindValidationFailed)
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	return hasKind(err, ErrorKindUnauthorized)
}

// IsForbidden checks if the error is a permission error.
func IsForbidden(err error) bool {
	return hasKind(err, ErrorKindForbidden)
}

// IsConflict checks if the error is a conflict error.
func IsConflict(err error) bool {
	return hasKind(err, ErrorKindConflict)
}

// IsRateLimited checks if the error is a rate limit error.
func IsRateLimited(err error) bool {
	return hasKind(err, ErrorKindRateLimited)
}

// IsServerError checks if the error is a server-side error.
func IsServerError(err error) bool {
	return hasKind(err, ErrorKindServerError)
}

// IsNetworkError checks if the error is a transport failure with no
// parseable response.
func IsNetworkError(err error) bool {
	return hasKind(err, ErrorKindNetworkError)
}

// RetryAfterHint extracts the server's Retry-After duration from a rate
// limit error. It reports false when the error carries no hint.
func RetryAfterHint(err error) (time.Duration, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return apiErr.RetryAfter, true
	}

	return 0, false
}

// IsWrongPassword checks if the error reports a rejected current password on
// a password update. The API signals it as a validation failure against the
// oldPassword meta field.
func IsWrongPassword(err error) bool {
	apiErr := &APIError{}
	if !errors.As(err, &apiErr) || apiErr.Kind != ErrorKindValidationFailed {
		return false
	}

	first := apiErr.FirstError()
	if first == nil {
		return false
	}

	if first.Code == "PASSWORD_INVALID" {
		return true
	}

	return first.Source != nil && strings.HasSuffix(first.Source.Pointer, "/oldPassword")
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired     = errors.New("config is required")
	ErrEndpointRequired   = errors.New("API endpoint is required")
	ErrAccountRequired    = errors.New("account ID is required")
	ErrTokenRequired      = errors.New("API token is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrSessionInvalidated = errors.New("session token has been invalidated")
	ErrTokenExpired       = errors.New("session token has expired")
	ErrNoMorePages        = errors.New("no more pages")
)
