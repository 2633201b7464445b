package pdf

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidImage is returned when the overlay image cannot be decoded
	ErrInvalidImage = errors.New("invalid overlay image")

	// ErrInvalidPDF is returned when a document cannot be parsed
	ErrInvalidPDF = errors.New("invalid PDF document")

	// ErrInvalidOption is returned for out-of-range or unknown option values
	ErrInvalidOption = errors.New("invalid option")
)

// PageError tags a failure with the zero-based index of the page being processed.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page+1, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
