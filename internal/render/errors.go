package render

import "fmt"

// ConversionError reports that a form could not be converted.
type ConversionError struct {
	File    string
	Message string
	Err     error
}

// Error returns the user-facing message.
func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

func conversionErrorf(file string, cause error, format string, args ...any) *ConversionError {
	return &ConversionError{File: file, Message: fmt.Sprintf(format, args...), Err: cause}
}
