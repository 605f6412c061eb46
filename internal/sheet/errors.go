package sheet

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFile is returned when a workbook has no data rows
	ErrEmptyFile = errors.New("file is empty")

	// ErrNoValidRows is returned when every first-column value is blank
	ErrNoValidRows = errors.New("no valid tweets found in file; make sure the first column contains text")
)

// ParseError is returned when a file cannot be decoded as a spreadsheet
type ParseError struct {
	File    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.File, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
