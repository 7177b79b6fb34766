package pipeline

import "fmt"

// Pipeline error codes (E200-E299).
const (
	ErrCodeParse         = "E201" // malformed pipeline text
	ErrCodeUnknownPass   = "E202" // pass not registered
	ErrCodeMisplaced     = "E203" // adaptor used where it cannot nest
	ErrCodeUnexpectedArg = "E204" // pass written with a nested pipeline
	ErrCodeEmptyPipeline = "E205" // description names no passes
)

// BuildError reports a well-formed description that cannot be assembled.
type BuildError struct {
	Code    string
	Element string
	Column  int
	Message string
	Err     error
}

func (e *BuildError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Element != "" {
		msg = fmt.Sprintf("%s: %q (column %d): %s", e.Code, e.Element, e.Column, e.Message)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
