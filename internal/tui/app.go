package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shoplist/internal/docs"
	"shoplist/internal/journal"
	"shoplist/internal/model"
	"shoplist/internal/mutate"
	"shoplist/internal/render"
	"shoplist/internal/store"
	"shoplist/internal/widget"
)

type mode int

const (
	modeList mode = iota
	modePrompt
	modeHelp
	modeJournal
)

type promptKind int

const (
	promptAdd promptKind = iota
	promptEdit
	promptFilter
)

const (
	journalLimit  = 200
	flashDuration = 3 * time.Second
)

type flashClearMsg struct{ seq int }

type appModel struct {
	w       *widget.Widget
	canvas  *canvas
	journal *journal.Journal
	log     *slog.Logger

	view   render.View
	cursor int
	offset int

	mode      mode
	prompt    promptKind
	input     textinput.Model
	editIndex int
	// query before the filter prompt opened; restored on cancel.
	prevQuery string

	keys       keyMap
	promptKeys promptKeyMap
	help       help.Model

	width  int
	height int

	flash    string
	flashErr bool
	flashSeq int

	overlayLines []string
	overlayTop   int

	copy func(string) error
}

func newAppModel(opts Options) appModel {
	st := opts.Store
	if st == nil {
		st = store.Default()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	c := &canvas{}
	w := widget.New(st, c, widget.WithJournal(opts.Journal), widget.WithLogger(log))

	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 200

	m := appModel{
		w:          w,
		canvas:     c,
		journal:    opts.Journal,
		log:        log,
		input:      in,
		keys:       defaultKeyMap(),
		promptKeys: defaultPromptKeyMap(),
		help:       help.New(),
		width:      80,
		height:     24,
		copy:       copyToClipboard,
	}
	_ = w.Mount(context.Background())
	m.view = c.view
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-12)
		m.clampCursor()
		return m, nil

	case flashClearMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
			m.flashErr = false
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modePrompt:
			return m.updatePrompt(msg)
		case modeHelp, modeJournal:
			return m.updateOverlay(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.mode == modePrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
	case key.Matches(msg, k.Down):
		m.moveCursor(1)
	case key.Matches(msg, k.Top):
		m.cursor = 0
		m.clampCursor()
	case key.Matches(msg, k.Bottom):
		m.cursor = len(m.view.Rows) - 1
		m.clampCursor()

	case key.Matches(msg, k.Add):
		return m.openPrompt(promptAdd, "")
	case key.Matches(msg, k.Filter):
		m.prevQuery = m.view.Settings.Query
		return m.openPrompt(promptFilter, m.view.Settings.Query)
	case key.Matches(msg, k.Edit):
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		m.editIndex = row.Index
		return m.openPrompt(promptEdit, row.Item.Name)

	case key.Matches(msg, k.Toggle):
		if row, ok := m.selectedRow(); ok {
			return m.dispatch(mutate.Toggle{Index: row.Index})
		}
	case key.Matches(msg, k.Delete):
		if row, ok := m.selectedRow(); ok {
			return m.dispatch(mutate.Delete{Index: row.Index})
		}
	case key.Matches(msg, k.ClearFilter):
		if m.view.Settings.Query != "" {
			return m.dispatch(mutate.Filter{Query: ""})
		}
	case key.Matches(msg, k.HideChecked):
		return m.dispatch(mutate.ToggleHideChecked{})
	case key.Matches(msg, k.Match):
		next := model.MatchFuzzy
		if m.view.Settings.Match == model.MatchFuzzy {
			next = model.MatchSubstring
		}
		m, _ = m.dispatchModel(mutate.SetMatch{Mode: next})
		return m.withFlash("match: "+string(next), false)
	case key.Matches(msg, k.Clear):
		res, err := m.w.Dispatch(context.Background(), mutate.ClearChecked{})
		m.afterDispatch()
		if err != nil {
			return m.withFlash(err.Error(), true)
		}
		n, _ := res.Payload["removed"].(int)
		return m.withFlash(fmt.Sprintf("cleared %d checked", n), false)
	case key.Matches(msg, k.Copy):
		return m.copyVisible()
	case key.Matches(msg, k.Journal):
		return m.openJournal()
	case key.Matches(msg, k.Help):
		m.openHelp()
	}
	return m, nil
}

func (m appModel) openPrompt(kind promptKind, value string) (tea.Model, tea.Cmd) {
	m.mode = modePrompt
	m.prompt = kind
	m.input.SetValue(value)
	m.input.CursorEnd()
	switch kind {
	case promptAdd:
		m.input.Placeholder = "item name"
	case promptEdit:
		m.input.Placeholder = "new name"
	case promptFilter:
		m.input.Placeholder = "text to match"
	}
	cmd := m.input.Focus()
	return m, cmd
}

func (m appModel) closePrompt() appModel {
	m.mode = modeList
	m.input.Blur()
	m.input.Reset()
	return m
}

func (m appModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.promptKeys.Cancel):
		if m.prompt == promptFilter && m.view.Settings.Query != m.prevQuery {
			m, _ = m.dispatchModel(mutate.Filter{Query: m.prevQuery})
		}
		return m.closePrompt(), nil

	case key.Matches(msg, m.promptKeys.Confirm):
		value := m.input.Value()
		switch m.prompt {
		case promptAdd:
			if strings.TrimSpace(value) == "" {
				return m.closePrompt(), nil
			}
			res, err := m.w.Dispatch(context.Background(), mutate.Add{Name: value})
			m.afterDispatch()
			if err != nil {
				return m.withFlash(err.Error(), true)
			}
			m.selectIndex(res.Index)
			// The prompt stays open with an empty input for the next item.
			m.input.Reset()
			return m, nil
		case promptEdit:
			_, err := m.w.Dispatch(context.Background(), mutate.Edit{Index: m.editIndex, Name: value})
			m.afterDispatch()
			if errors.Is(err, store.ErrEmptyName) {
				return m.withFlash("name cannot be empty", true)
			}
			m = m.closePrompt()
			if err != nil {
				return m.withFlash(err.Error(), true)
			}
			m.selectIndex(m.editIndex)
			return m, nil
		default:
			return m.closePrompt(), nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.prompt == promptFilter && m.input.Value() != before {
		m, _ = m.dispatchModel(mutate.Filter{Query: m.input.Value()})
	}
	return m, cmd
}

func (m appModel) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		if m.overlayTop < len(m.overlayLines)-1 {
			m.overlayTop++
		}
	case "k", "up":
		if m.overlayTop > 0 {
			m.overlayTop--
		}
	default:
		m.mode = modeList
		m.overlayLines = nil
		m.overlayTop = 0
	}
	return m, nil
}

func (m *appModel) openHelp() {
	body, ok := docs.Get("keys")
	if !ok {
		body = "# Keys\n\nNo help available."
	}
	m.mode = modeHelp
	m.overlayTop = 0
	m.overlayLines = strings.Split(renderMarkdown(body, m.overlayWidth()), "\n")
}

func (m appModel) openJournal() (tea.Model, tea.Cmd) {
	if m.journal == nil {
		return m.withFlash("journal is off", true)
	}
	evs, err := m.journal.List(context.Background(), journalLimit)
	if err != nil {
		return m.withFlash("journal: "+err.Error(), true)
	}
	lines := []string{"Session journal", ""}
	if len(evs) == 0 {
		lines = append(lines, "(nothing yet)")
	}
	for _, ev := range evs {
		lines = append(lines, journalLine(ev))
	}
	m.mode = modeJournal
	m.overlayTop = max(0, len(lines)-m.overlayHeight())
	m.overlayLines = lines
	return m, nil
}

func journalLine(ev model.Event) string {
	line := ev.TS.Local().Format("15:04:05") + "  " + ev.Type
	if ev.Index >= 0 {
		line += fmt.Sprintf(" #%d", ev.Index)
	}
	if p, ok := ev.Payload.(map[string]any); ok && len(p) > 0 {
		parts := make([]string, 0, len(p))
		for _, k := range []string{"name", "from", "to", "checked", "removed", "query", "hideChecked", "match"} {
			if v, ok := p[k]; ok {
				parts = append(parts, fmt.Sprintf("%s=%v", k, v))
			}
		}
		line += "  " + strings.Join(parts, " ")
	}
	return line
}

func (m appModel) copyVisible() (tea.Model, tea.Cmd) {
	if m.view.Visible() == 0 {
		return m.withFlash("nothing to copy", true)
	}
	if err := m.copy(render.Text(m.view)); err != nil {
		m.log.Debug("clipboard write failed", "err", err)
		return m.withFlash("copy failed: "+err.Error(), true)
	}
	return m.withFlash(fmt.Sprintf("copied %d items", m.view.Visible()), false)
}

func (m appModel) dispatch(a mutate.Action) (tea.Model, tea.Cmd) {
	return m.dispatchModel(a)
}

func (m appModel) dispatchModel(a mutate.Action) (appModel, tea.Cmd) {
	_, err := m.w.Dispatch(context.Background(), a)
	m.afterDispatch()
	if err != nil {
		return m.withFlash(err.Error(), true)
	}
	return m, nil
}

// afterDispatch picks up the repainted view and keeps the cursor in range.
func (m *appModel) afterDispatch() {
	m.view = m.canvas.view
	m.clampCursor()
}

// withFlash shows s in the status line until the next flash or flashDuration.
func (m appModel) withFlash(s string, isErr bool) (appModel, tea.Cmd) {
	m.flashSeq++
	m.flash = s
	m.flashErr = isErr
	seq := m.flashSeq
	return m, tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashClearMsg{seq: seq} })
}

func (m appModel) selectedRow() (model.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Rows) {
		return model.Row{}, false
	}
	return m.view.Rows[m.cursor], true
}

// selectIndex moves the cursor to the row for store index i, if it is visible.
func (m *appModel) selectIndex(i int) {
	for pos, r := range m.view.Rows {
		if r.Index == i {
			m.cursor = pos
			m.clampCursor()
			return
		}
	}
}

func (m *appModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *appModel) clampCursor() {
	n := len(m.view.Rows)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	rows := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset > max(0, n-rows) {
		m.offset = max(0, n-rows)
	}
}
