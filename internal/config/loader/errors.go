package loader

import "fmt"

// ParseError reports a layer file that exists but could not be parsed
// by any supported serialization.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Err is the underlying parser error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteError reports a directory-creation, serialization, or write
// failure while persisting a layer file.
type WriteError struct {
	// Path is the file that could not be written.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("writing config file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}
