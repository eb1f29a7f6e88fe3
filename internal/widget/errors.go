package widget

import "fmt"

// PaintError wraps a failure of the surface. It ends Run.
type PaintError struct {
	Err error
}

func (e *PaintError) Error() string { return fmt.Sprintf("paint: %v", e.Err) }

func (e *PaintError) Unwrap() error { return e.Err }

// ParseError is returned by event sources for input that is not an action.
// Run reports it and keeps reading.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
