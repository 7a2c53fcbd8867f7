package converter

import (
	"errors"
	"fmt"
)

var (
	ErrNoSheets         = errors.New("workbook has no sheets")
	ErrColumnOutOfRange = errors.New("column index out of range")
	ErrNoFileDate       = errors.New("file name does not carry a date")
)

// SourceOpenError reports a source file that could not be read as a spreadsheet.
type SourceOpenError struct {
	Path string
	Err  error
}

func (e *SourceOpenError) Error() string {
	return fmt.Sprintf("open source %s: %v", e.Path, e.Err)
}

func (e *SourceOpenError) Unwrap() error { return e.Err }

// OutputCreateError reports a failure to create or write the combined output.
type OutputCreateError struct {
	Path string
	Err  error
}

func (e *OutputCreateError) Error() string {
	return fmt.Sprintf("write output %s: %v", e.Path, e.Err)
}

func (e *OutputCreateError) Unwrap() error { return e.Err }

func columnError(index, width int) error {
	return fmt.Errorf("%w: index %d, row has %d columns", ErrColumnOutOfRange, index, width)
}
