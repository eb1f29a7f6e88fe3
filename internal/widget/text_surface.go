package widget

import (
	"fmt"
	"io"

	"shoplist/internal/render"
)

// TextSurface paints the plain-text rendering to a writer. Errors are written
// to Err when set.
type TextSurface struct {
	Out     io.Writer
	Err     io.Writer
	Summary bool
}

func (s *TextSurface) Paint(v render.View) error {
	if s.Summary {
		if _, err := fmt.Fprintf(s.Out, "-- %s\n", render.Summary(v)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(s.Out, render.Text(v))
	return err
}

func (s *TextSurface) ReportError(err error) {
	if s.Err == nil {
		return
	}
	_, _ = fmt.Fprintf(s.Err, "error: %v\n", err)
}
