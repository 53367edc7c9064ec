package engine

import (
	"errors"

	"github.com/thywilljoshua/pdf-toolkit/internal/pagespec"
)

// User input errors. They are detected before the codec is touched.
var (
	ErrNoInput         = errors.New("no input selected")
	ErrEmptySpec       = errors.New("no pages entered")
	ErrEmptyText       = errors.New("no text entered")
	ErrNoOption        = errors.New("no option chosen")
	ErrInvalidRotation = errors.New("rotation must be a non-zero multiple of 90 degrees")
	ErrEmptySelection  = errors.New("page selection is empty")
	ErrPageOutOfRange  = errors.New("page out of range")
	ErrNoPagesLeft     = errors.New("operation would remove every page")
)

var (
	ErrNotInitialized = errors.New("engine not initialized")
	ErrUnsupported    = errors.New("operation not supported")
	ErrDecode         = errors.New("cannot decode input")
	ErrEncrypted      = errors.New("document is password protected")
	ErrUnknownRequest = errors.New("unknown request")
)

var userErrors = []error{
	ErrNoInput, ErrEmptySpec, ErrEmptyText, ErrNoOption, ErrInvalidRotation,
	ErrEmptySelection, ErrPageOutOfRange, ErrNoPagesLeft, ErrUnsupported,
	pagespec.ErrOutOfRange,
}

// IsUserError reports whether err should be shown to the user as a notice
// rather than treated as a processing failure.
func IsUserError(err error) bool {
	var se *pagespec.SyntaxError
	if errors.As(err, &se) {
		return true
	}
	for _, ue := range userErrors {
		if errors.Is(err, ue) {
			return true
		}
	}
	return false
}
