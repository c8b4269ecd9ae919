package palette

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme only changes colors; layout is the same for every theme.
type Theme struct {
	Name     string
	Border   lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	ActiveFg lipgloss.Color
	ActiveBg lipgloss.Color
}

var themes = map[string]Theme{
	"default": {
		Name:     "default",
		Border:   lipgloss.Color("#4ECDC4"),
		Accent:   lipgloss.Color("#95E1D3"),
		Text:     lipgloss.Color("#EAEAEA"),
		Muted:    lipgloss.Color("#94A3B8"),
		ActiveFg: lipgloss.Color("#1A1A2E"),
		ActiveBg: lipgloss.Color("#95E1D3"),
	},
	"orange": {
		Name:     "orange",
		Border:   lipgloss.Color("#FFA86B"),
		Accent:   lipgloss.Color("#FFA86B"),
		Text:     lipgloss.Color("#EAEAEA"),
		Muted:    lipgloss.Color("#94A3B8"),
		ActiveFg: lipgloss.Color("#1A1A2E"),
		ActiveBg: lipgloss.Color("#FFA86B"),
	},
	"red": {
		Name:     "red",
		Border:   lipgloss.Color("#FF6B6B"),
		Accent:   lipgloss.Color("#FF6B6B"),
		Text:     lipgloss.Color("#EAEAEA"),
		Muted:    lipgloss.Color("#94A3B8"),
		ActiveFg: lipgloss.Color("#EAEAEA"),
		ActiveBg: lipgloss.Color("#EF4444"),
	},
	"dark": {
		Name:     "dark",
		Border:   lipgloss.Color("#64748B"),
		Accent:   lipgloss.Color("#EAEAEA"),
		Text:     lipgloss.Color("#EAEAEA"),
		Muted:    lipgloss.Color("#64748B"),
		ActiveFg: lipgloss.Color("#EAEAEA"),
		ActiveBg: lipgloss.Color("#16213E"),
	},
}

// ThemeByName looks a theme up case-insensitively and falls back to the
// default theme.
func ThemeByName(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return themes["default"]
}
