package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"dragcart/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *appModel) View() string {
	if m.overlay != overlayNone {
		return m.viewPanel()
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteByte('\n')
	b.WriteString(m.viewHint())
	b.WriteByte('\n')
	for i, box := range m.lay.boxes {
		if i > 0 {
			b.WriteString(strings.Repeat("\n", boxGap))
		}
		b.WriteString(m.viewBox(box))
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat("\n", boxGap))
	b.WriteString(m.viewStatus())
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *appModel) viewHeader() string {
	title := styleHeader().Render("dragcart")
	if m.journal == nil {
		return title
	}
	sep := " " + glyphSep() + " "
	counts := fmt.Sprintf("%d moved%s%d ignored", m.stats.Accepted, sep, m.stats.Rejected)
	return title + styleMuted().Render(sep+counts)
}

func (m *appModel) viewHint() string {
	item, ok := m.session.Dragging()
	if !ok {
		return styleMuted().Render("Drag an item to the other list, or press space to pick it up.")
	}
	target := "nowhere"
	if m.hover != "" {
		target = m.titles[m.hover]
	}
	line := fmt.Sprintf("%s %s %s %s", glyphGrip(), item, glyphArrow(), target)
	return ansi.Truncate(line, m.lay.width, glyphEllipsis())
}

func (m *appModel) borderColor(id model.CollectionID) lipgloss.TerminalColor {
	if m.ctrl.Highlighted(id) {
		item, _ := m.session.Dragging()
		switch m.ctrl.Verdict(id, item) {
		case model.VerdictReject:
			return colorReject
		default:
			return colorAccept
		}
	}
	if m.drag == dragNone && id == m.focus {
		return colorBorderFocus
	}
	return colorBorderIdle
}

func (m *appModel) viewBox(box regionBox) string {
	dragging, isDragging := m.session.Dragging()

	title := fmt.Sprintf("%s (%d)", m.titles[box.id], len(box.chips))
	lines := []string{
		styleHeader().Render(ansi.Truncate(title, box.inner, glyphEllipsis())),
	}

	if len(box.chips) == 0 {
		lines = append(lines, styleMuted().Render(ansi.Truncate("Drop items here", box.inner, glyphEllipsis())))
	}
	for _, row := range box.rows() {
		parts := make([]string, 0, len(row))
		for _, c := range row {
			st := styleChip()
			switch {
			case isDragging && c.item == dragging:
				st = styleChipDragging()
			case m.drag == dragNone && box.id == m.focus && c.index == m.cursor:
				st = styleChipCursor()
			}
			parts = append(parts, st.Render(c.label))
		}
		lines = append(lines, strings.Join(parts, strings.Repeat(" ", chipGap)))
	}

	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor(box.id)).
		Padding(0, boxPaddingX).
		Width(box.w - boxChrome)
	return st.Render(strings.Join(lines, "\n"))
}

func (m *appModel) viewStatus() string {
	if m.status == "" {
		return ""
	}
	st := styleMuted()
	switch {
	case m.statusLevel >= slog.LevelError:
		st = lipgloss.NewStyle().Foreground(colorStatusError)
	case m.statusLevel >= slog.LevelWarn:
		st = lipgloss.NewStyle().Foreground(colorStatusWarn)
	}
	return st.Render(ansi.Truncate(m.status, m.lay.width, glyphEllipsis()))
}

func (m *appModel) viewPanel() string {
	title := "Help"
	if m.overlay == overlayHistory {
		title = "Drop history"
	}
	footer := styleMuted().Render("esc to close")
	return styleHeader().Render(title) + "\n" + m.panel.View() + "\n" + footer
}

// refreshPanel rebuilds the overlay content for the current width.
func (m *appModel) refreshPanel() {
	w := m.lay.width
	switch m.overlay {
	case overlayHelp:
		m.panel.SetContent(renderMarkdown(helpText(m.titles), w-2))
	case overlayHistory:
		m.panel.SetContent(renderHistory(m.history, m.titles, w))
	}
}
