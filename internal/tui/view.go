package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shoplist/internal/model"
	"shoplist/internal/render"
)

// header + rule + status line + footer
const chromeRows = 4

func (m appModel) listHeight() int {
	return max(1, m.height-chromeRows)
}

func (m appModel) overlayWidth() int {
	return max(20, min(m.width-4, 90))
}

func (m appModel) overlayHeight() int {
	return max(3, m.height-4)
}

func (m appModel) View() string {
	switch m.mode {
	case modeHelp, modeJournal:
		return m.viewOverlay()
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteByte('\n')
	b.WriteString(styleChrome().Render(strings.Repeat(glyphHRule(), max(1, m.width))))
	b.WriteByte('\n')
	b.WriteString(m.viewRows())
	b.WriteString(m.viewStatus())
	b.WriteByte('\n')
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m appModel) viewHeader() string {
	title := styleTitle().Render("Shopping list")
	summary := styleMuted().Render(render.Summary(m.view))
	return fitLine(title+" "+summary, m.width)
}

func (m appModel) viewRows() string {
	h := m.listHeight()
	var b strings.Builder
	lines := 0
	if len(m.view.Rows) == 0 {
		msg := "No items match."
		if m.view.Empty() {
			msg = "Nothing on the list. Press a to add something."
		}
		b.WriteString(styleMuted().Render("  " + msg))
		b.WriteByte('\n')
		lines++
	}
	idxW := len(strconv.Itoa(max(0, m.view.Total-1)))
	end := min(len(m.view.Rows), m.offset+h)
	for pos := m.offset; pos < end; pos++ {
		b.WriteString(m.viewRow(m.view.Rows[pos], pos == m.cursor, idxW))
		b.WriteByte('\n')
		lines++
	}
	for ; lines < h; lines++ {
		b.WriteByte('\n')
	}
	return b.String()
}

func (m appModel) viewRow(r model.Row, selected bool, idxW int) string {
	cursor := " "
	if selected {
		cursor = glyphCursor()
	}
	idx := strconv.Itoa(r.Index)
	idx = strings.Repeat(" ", max(0, idxW-len(idx))) + idx

	name := r.Item.Name
	nameStyle := lipgloss.NewStyle()
	if r.Item.Checked {
		nameStyle = styleCheckedName()
	}

	line := cursor + " " +
		styleCheckbox(r.Item.Checked).Render(glyphCheckbox(r.Item.Checked)) + " " +
		styleMuted().Render(idx) + " " +
		nameStyle.Render(name)
	line = fitLine(line, m.width)
	if selected {
		return styleSelected().Width(max(1, m.width)).MaxWidth(max(1, m.width)).Render(line)
	}
	return line
}

func (m appModel) viewStatus() string {
	if m.flash != "" {
		st := styleMuted()
		if m.flashErr {
			st = styleError()
		}
		return fitLine(st.Render(m.flash), m.width)
	}
	var parts []string
	s := m.view.Settings
	if q := strings.TrimSpace(s.Query); q != "" {
		parts = append(parts, "filter: "+q+" ("+string(s.Match)+")")
	}
	if s.HideChecked {
		parts = append(parts, "checked hidden")
	}
	return fitLine(styleMuted().Render(strings.Join(parts, " · ")), m.width)
}

func (m appModel) viewFooter() string {
	if m.mode == modePrompt {
		label := "Add:"
		switch m.prompt {
		case promptEdit:
			label = "Rename #" + strconv.Itoa(m.editIndex) + ":"
		case promptFilter:
			label = "Filter:"
		}
		return renderInputLine(m.width, label, m.input.View())
	}
	return fitLine(m.help.ShortHelpView(m.keys.ShortHelp()), m.width)
}

func (m appModel) viewOverlay() string {
	h := m.overlayHeight()
	top := min(m.overlayTop, max(0, len(m.overlayLines)-1))
	end := min(len(m.overlayLines), top+h)
	body := strings.Join(m.overlayLines[top:end], "\n")
	box := styleOverlay().Width(m.overlayWidth()).Render(body)
	hint := styleMuted().Render("j/k scroll · any other key closes")
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box) + "\n" + fitLine(hint, m.width)
}
