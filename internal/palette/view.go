package palette

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the overlay box positioned for the current terminal
// size, or nothing when the dialog is closed.
func (m Model) View() string {
	if m.session.State() != StateOpen {
		return ""
	}

	inner := m.boxWidth - 2
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	input := m.input.View()
	if m.loading && m.cfg.ShowProcessing {
		input = m.spinner.View() + input
	}

	lines := []string{
		input,
		muted.Render(strings.Repeat("─", inner)),
	}
	lines = append(lines, m.renderList(inner)...)
	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(m.theme.Accent)
	lines = append(lines, m.help.View(m.keys))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Width(inner).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	x, y := m.origin()
	return lipgloss.NewStyle().MarginLeft(x).MarginTop(y).Render(box)
}

// renderList returns exactly listHeight lines.
func (m Model) renderList(width int) []string {
	cursor := m.session.cursor
	rows := m.session.Results()
	out := make([]string, 0, m.listHeight)

	active, hasActive := cursor.Active()
	from, to := cursor.Visible()
	for i := from; i < to; i++ {
		out = append(out, m.renderRow(rows[i], width, hasActive && i == active)...)
	}

	// the first visible row can be partially scrolled off
	skip := cursor.ScrollTop() - from*rowHeight
	if skip > 0 && skip <= len(out) {
		out = out[skip:]
	}
	if len(out) > m.listHeight {
		out = out[:m.listHeight]
	}
	for len(out) < m.listHeight {
		out = append(out, "")
	}
	return out
}

func (m Model) renderRow(r Result, width int, active bool) []string {
	title := lipgloss.NewStyle().Foreground(m.theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(m.theme.Muted)
	shortcut := lipgloss.NewStyle().Foreground(m.theme.Accent)
	if active {
		title = title.Foreground(m.theme.ActiveFg).Background(m.theme.ActiveBg)
		desc = desc.Foreground(m.theme.ActiveFg).Background(m.theme.ActiveBg)
		shortcut = shortcut.Foreground(m.theme.ActiveFg).Background(m.theme.ActiveBg)
	}

	label := iconGlyph(r.Icon) + " " + r.Title
	hint := r.Shortcut
	room := width - lipgloss.Width(hint) - 1
	label = clip(label, room)
	gap := width - lipgloss.Width(label) - lipgloss.Width(hint)
	if gap < 1 {
		gap = 1
	}

	first := title.Render(label) + title.Render(strings.Repeat(" ", gap)) + shortcut.Render(hint)
	second := desc.Width(width).Render(clip("  "+r.Description, width))
	return []string{first, second}
}

func iconGlyph(icon string) string {
	switch icon {
	case IconSearchPage:
		return "⌕"
	case IconDefault:
		return "›"
	default:
		return "•"
	}
}

// clip shortens s to limit cells, ending with an ellipsis when cut.
func clip(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(r[:limit-1]) + "…"
}
