package palette

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Shortcuts maps key presses to overlay actions.
type Shortcuts struct {
	open    key.Binding
	enabled bool
}

// ParseHotkeys turns a comma separated list such as "ctrl+k, mod+space"
// into key names. "mod" is an alias for ctrl.
func ParseHotkeys(list string) []string {
	var keys []string
	for _, part := range strings.Split(list, ",") {
		k := strings.ToLower(strings.TrimSpace(part))
		if k == "" {
			continue
		}
		if strings.HasPrefix(k, "mod+") {
			k = "ctrl+" + strings.TrimPrefix(k, "mod+")
		}
		keys = append(keys, k)
	}
	return keys
}

// NewShortcuts builds the global open binding from a hotkey list.
func NewShortcuts(hotkeys string, enabled bool) Shortcuts {
	keys := ParseHotkeys(hotkeys)
	b := key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), "spotlight"),
	)
	if len(keys) == 0 || !enabled {
		b.SetEnabled(false)
	}
	return Shortcuts{open: b, enabled: enabled && len(keys) > 0}
}

// OpenBinding is exposed for help rendering.
func (s Shortcuts) OpenBinding() key.Binding { return s.open }

// Global reports whether msg should open the overlay on host.
func (s Shortcuts) Global(msg tea.KeyMsg, host Host) bool {
	if !s.enabled || !key.Matches(msg, s.open) {
		return false
	}
	return host == nil || !host.Embedded()
}

// Digit returns n for ctrl+n with n in 1..9. Most terminals never send
// ctrl with a digit, so alt+n is accepted as the same chord.
func Digit(msg tea.KeyMsg) (int, bool) {
	k := msg.String()
	for _, prefix := range []string{"ctrl+", "alt+"} {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		rest := strings.TrimPrefix(k, prefix)
		if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '9' {
			return int(rest[0] - '0'), true
		}
	}
	return 0, false
}

// overlayKeys are the fixed bindings inside the open overlay.
type overlayKeys struct {
	Down    key.Binding
	Up      key.Binding
	Invoke  key.Binding
	Dismiss key.Binding
	Escape  key.Binding
}

func defaultOverlayKeys() overlayKeys {
	return overlayKeys{
		Down:    key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		Up:      key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous")),
		Invoke:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Dismiss: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "close")),
		Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear/close")),
	}
}

// ShortHelp implements help.KeyMap.
func (k overlayKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Invoke, k.Escape}
}

// FullHelp implements help.KeyMap.
func (k overlayKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Dismiss}}
}
