package widget

import (
	"bufio"
	"context"
	"io"
	"strings"

	"shoplist/internal/mutate"
)

// LineSource reads one command per line (`add milk`, `toggle 2`, ...).
// Blank lines and lines starting with # are skipped.
type LineSource struct {
	sc   *bufio.Scanner
	line int
}

func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{sc: bufio.NewScanner(r)}
}

func (s *LineSource) Next(ctx context.Context) (mutate.Action, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !s.sc.Scan() {
			if err := s.sc.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		s.line++
		text := strings.TrimSpace(s.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		a, err := mutate.ParseLine(text)
		if err != nil {
			return nil, &ParseError{Line: s.line, Err: err}
		}
		return a, nil
	}
}

// ChanSource yields actions sent on a channel. Closing the channel ends the stream.
type ChanSource <-chan mutate.Action

func (c ChanSource) Next(ctx context.Context) (mutate.Action, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case a, ok := <-c:
		if !ok {
			return nil, io.EOF
		}
		return a, nil
	}
}
