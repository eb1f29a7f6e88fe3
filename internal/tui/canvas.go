package tui

import "shoplist/internal/render"

// canvas is the widget surface for the TUI. The bubbletea model reads the last
// painted view back after each dispatch.
type canvas struct {
	view    render.View
	painted bool
	lastErr error
}

func (c *canvas) Paint(v render.View) error {
	c.view = v
	c.painted = true
	return nil
}

func (c *canvas) ReportError(err error) { c.lastErr = err }
