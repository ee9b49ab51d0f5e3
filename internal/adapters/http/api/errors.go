package api

import (
	"errors"
	"net/http"

	"github.com/okian/cambios/internal/adapters/pdftext"
	service "github.com/okian/cambios/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrTooLarge     = errors.New("upload too large")
	ErrNotEvaluated = errors.New("analysis has no impact report yet")
	ErrRateLimited  = errors.New("rate limited")
)

// Error tags an underlying error with the operation that failed and a kind used to
// pick the HTTP status.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Kind != nil:
		return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	case e.Kind != nil:
		return e.Op + ": " + e.Kind.Error()
	default:
		return e.Op
	}
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NewKind returns an error of kind for op.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// WrapKind tags err with op and kind. A nil err yields nil.
func WrapKind(op string, kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// Wrap tags err with op, keeping whatever kind it already carries.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// classify maps an error to a status and a stable machine-readable code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, service.ErrUnsupportedFile):
		return http.StatusUnsupportedMediaType, "unsupported_media_type"
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, ErrNotEvaluated):
		return http.StatusConflict, "not_evaluated"
	case errors.Is(err, service.ErrNoText):
		return http.StatusUnprocessableEntity, "no_text"
	case errors.Is(err, pdftext.ErrOpen), errors.Is(err, pdftext.ErrExtract):
		return http.StatusUnprocessableEntity, "unreadable_pdf"
	case errors.Is(err, service.ErrInvalidAssignment):
		return http.StatusBadRequest, "invalid_assignment"
	case errors.Is(err, service.ErrInvalidWindow):
		return http.StatusBadRequest, "invalid_window"
	case errors.Is(err, service.ErrNoPages), errors.Is(err, service.ErrPageOutOfRange):
		return http.StatusBadRequest, "invalid_page"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
