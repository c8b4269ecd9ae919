package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/spotlight/internal/palette"
)

type pageKeys struct {
	Refresh key.Binding
	NextHit key.Binding
	PrevHit key.Binding
	Clear   key.Binding
	Quit    key.Binding
}

func defaultPageKeys() pageKeys {
	return pageKeys{
		Refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		NextHit: key.NewBinding(key.WithKeys("n"), key.WithHelp("n/N", "next/prev hit")),
		PrevHit: key.NewBinding(key.WithKeys("N")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// KeyHandler routes key presses between the overlay and the page.
type KeyHandler struct {
	app  *App
	keys pageKeys
}

func NewKeyHandler(app *App) *KeyHandler {
	return &KeyHandler{app: app, keys: defaultPageKeys()}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	// The open overlay owns the keyboard, except for ctrl+c.
	if a.palette.IsOpen() {
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.palette, cmd = a.palette.Update(msg)
		return a, cmd
	}

	if a.palette.Shortcuts().Global(msg, a.host) {
		return kh.open(false)
	}
	if key.Matches(msg, a.palette.OpenBinding()) && a.host.Embedded() {
		a.setStatus(MsgNoPalette, StatusWarn)
		return a, nil
	}

	switch {
	case key.Matches(msg, kh.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, kh.keys.Refresh):
		return kh.open(true)
	case key.Matches(msg, kh.keys.NextHit):
		a.stepHit(1)
		return a, nil
	case key.Matches(msg, kh.keys.PrevHit):
		a.stepHit(-1)
		return a, nil
	case key.Matches(msg, kh.keys.Clear):
		a.clearHighlight()
		a.err = nil
		return a, nil
	}

	return kh.delegateToViewport(msg)
}

func (kh *KeyHandler) open(force bool) (tea.Model, tea.Cmd) {
	a := kh.app
	var cmd tea.Cmd
	a.palette, cmd = a.palette.Open(palette.OpenRequest{ForceRefresh: force, Trigger: "page"})
	return a, cmd
}

func (kh *KeyHandler) delegateToViewport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	if a.page == nil || a.host.frozen {
		return a, nil
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// GetHelp lists the page commands for the status bar.
func (kh *KeyHandler) GetHelp() []string {
	var help []string
	if !kh.app.host.Embedded() {
		b := kh.app.palette.OpenBinding()
		if b.Enabled() {
			help = append(help, b.Help().Key+": "+b.Help().Desc)
		}
	}
	for _, b := range []key.Binding{kh.keys.Refresh, kh.keys.NextHit, kh.keys.Clear, kh.keys.Quit} {
		help = append(help, b.Help().Key+": "+b.Help().Desc)
	}
	return help
}
