package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/spotlight/internal/palette"
)

// Invoker performs the navigation for an invoked palette row. The
// command reports back with a navigator.NavigatedMsg.
type Invoker interface {
	Command(msg palette.InvokeMsg) tea.Cmd
}

// Watcher reports changes of the index file one message at a time.
type Watcher interface {
	Next() tea.Cmd
}

// Deps are the collaborators the app is wired with. Only Loader is
// required.
type Deps struct {
	Loader    palette.Loader
	Navigator Invoker
	Watcher   Watcher
	Clipboard func() (string, error)
	Embedded  bool
}

type pageRenderedMsg struct {
	page  renderedPage
	width int
}

type errorMsg struct {
	err error
}
