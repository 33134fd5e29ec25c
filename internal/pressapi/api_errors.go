package pressapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/imroc/req/v3"
)

// State store sentinel errors. The engine matches these with errors.Is.
var (
	// ErrStateNotFound means no state exists yet for the repository. Expected
	// on a first run.
	ErrStateNotFound = errors.New("pressapi: repository state not found")

	// ErrStateConflict means the stored version advanced since retrieval; a
	// competing writer got there first.
	ErrStateConflict = errors.New("pressapi: repository state version conflict")

	// ErrStoreUnavailable covers transport and server-side failures of the
	// state store.
	ErrStoreUnavailable = errors.New("pressapi: state store unavailable")
)

const (
	// Generic request/server errors
	CodeInvalidRequest = "E_INVALID_REQUEST" // bad or invalid request
	CodeRateLimited    = "E_RATE_LIMITED"    // rate limit exceeded
	CodeInternalError  = "E_INTERNAL_ERROR"  // internal server error
	CodeAccessDenied   = "E_ACCESS_DENIED"   // access denied
	CodeUnknownError   = "E_UNKNOWN_ERR"     // unknown error

	// Post errors
	CodePostNotFound   = "E_POST_NOT_FOUND"   // the remote post does not exist
	CodePostInvalid    = "E_POST_INVALID"     // post payload failed validation
	CodePostPutFailed  = "E_POST_PUT_FAILED"  // failure creating/updating a post
	CodeStateNotFound  = "E_STATE_NOT_FOUND"  // no state document for the repository
	CodeStateConflict  = "E_STATE_CONFLICT"   // version token did not match
	CodeStatePutFailed = "E_STATE_PUT_FAILED" // failure writing the state document
)

// APIError is the error body returned by the service.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s - %s", e.Code, e.Message)
}

// PublishErrorKind splits publish failures into the classes the executor
// cares about.
type PublishErrorKind uint8

const (
	// PublishTransient covers timeouts, 5xx and rate limiting. Retryable.
	PublishTransient PublishErrorKind = iota
	// PublishPermanent covers validation and auth failures. Not retryable.
	PublishPermanent
	// PublishNotFound means the remote post id no longer exists. Permanent;
	// the stale mapping is surfaced for manual resolution.
	PublishNotFound
)

var publishErrorKindNames = []string{
	"transient",
	"permanent",
	"not-found",
}

func (k PublishErrorKind) String() string {
	return publishErrorKindNames[k]
}

// PublishError is the failure taxonomy of the Publisher Client contract.
type PublishError struct {
	Kind    PublishErrorKind
	Code    string
	Message string
	Status  int
}

func (e *PublishError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("publish %s error: %s - %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("publish %s error: %s", e.Kind, e.Message)
}

// IsTransient reports whether err is a retryable publish failure.
func IsTransient(err error) bool {
	var pe *PublishError
	return errors.As(err, &pe) && pe.Kind == PublishTransient
}

// IsRemoteNotFound reports whether err means the remote post is gone.
func IsRemoteNotFound(err error) bool {
	var pe *PublishError
	return errors.As(err, &pe) && pe.Kind == PublishNotFound
}

// publishError classifies a posts-API response into the PublishError
// taxonomy. Returns nil when the call succeeded.
func publishError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		// transport-level: timeouts, connection refused, DNS
		return &PublishError{
			Kind:    PublishTransient,
			Message: fmt.Sprintf("%s: %v", operation, requestErr),
		}
	}

	if !resp.IsErrorState() {
		return nil
	}

	pe := &PublishError{
		Status:  resp.StatusCode,
		Message: operation,
	}
	if apiErr, ok := resp.ErrorResult().(*APIError); ok {
		pe.Code = apiErr.Code
		pe.Message = fmt.Sprintf("%s: %s", operation, apiErr.Message)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		pe.Kind = PublishNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		pe.Kind = PublishTransient
	case resp.StatusCode >= 500:
		pe.Kind = PublishTransient
	default:
		pe.Kind = PublishPermanent
	}

	return pe
}

// storeError maps a state-API response onto the store sentinel errors.
// Returns nil when the call succeeded.
func storeError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("%s: %v: %w", operation, requestErr, ErrStoreUnavailable)
	}

	if !resp.IsErrorState() {
		return nil
	}

	detail := resp.Status
	if apiErr, ok := resp.ErrorResult().(*APIError); ok {
		detail = fmt.Sprintf("%s - %s", apiErr.Code, apiErr.Message)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %s: %w", operation, detail, ErrStateNotFound)
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusPreconditionFailed:
		return fmt.Errorf("%s: %s: %w", operation, detail, ErrStateConflict)
	default:
		return fmt.Errorf("%s: %s: %w", operation, detail, ErrStoreUnavailable)
	}
}
