package service

import (
	"errors"

	"github.com/okian/cambios/internal/adapters/repository"
)

// Sentinel errors returned by the service.
var (
	ErrNoPages           = errors.New("document has no pages")
	ErrPageOutOfRange    = errors.New("page out of range")
	ErrNoText            = errors.New("no text on page")
	ErrInvalidAssignment = errors.New("invalid team assignment")
	ErrInvalidWindow     = errors.New("window must be within 5..30 minutes")
	ErrUnsupportedFile   = errors.New("unsupported file type, expected .pdf or .txt")
	ErrNotFound          = repository.ErrNotFound
)
