package engine

import (
	"errors"
	"fmt"
)

// Stage names the part of a conversion that failed.
type Stage string

const (
	// StageRead covers loading the icon source.
	StageRead Stage = "read"

	// StageCompile covers XML and path data parsing.
	StageCompile Stage = "compile"

	// StageWrite covers handing the generated file to the sink.
	StageWrite Stage = "write"
)

// ConversionError reports a conversion that failed for one source.
type ConversionError struct {
	// Source is the source name or file path.
	Source string

	// Stage is where the conversion stopped.
	Stage Stage

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Stage, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// IsWriteError returns true if err is a conversion that failed in the sink.
// Uses errors.As to handle wrapped errors.
func IsWriteError(err error) bool {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Stage == StageWrite
	}
	return false
}
