package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/spotlight/internal/debuglog"
	"github.com/pders01/spotlight/internal/navigator"
	"github.com/pders01/spotlight/internal/palette"
	"github.com/pders01/spotlight/internal/provider"
)

// renderPage renders the page for the current width off the UI loop.
func (a *App) renderPage() tea.Cmd {
	if a.page == nil {
		return nil
	}
	r, err := a.getRenderer()
	if err != nil {
		return func() tea.Msg { return errorMsg{err: wrapErr("initializing renderer", err)} }
	}
	a.rendering = true
	blocks := a.page.blocks
	width := a.width
	return func() tea.Msg {
		page, err := renderBlocks(r, blocks)
		if err != nil {
			return errorMsg{err: wrapErr("rendering page", err)}
		}
		return pageRenderedMsg{page: page, width: width}
	}
}

// navigate hands an invoked row to the navigator.
func (a *App) navigate(msg palette.InvokeMsg) tea.Cmd {
	if a.deps.Navigator == nil {
		a.err = errors.New(MsgNavigatorNone)
		return nil
	}
	a.setStatus(MsgOpening(msg.Result.Title), StatusInfo)
	return a.deps.Navigator.Command(msg)
}

func (a *App) navigated(msg navigator.NavigatedMsg) {
	if msg.Err != nil {
		a.err = wrapErr("navigation failed", msg.Err)
		return
	}
	switch {
	case msg.Outcome.Kind == navigator.InPageSearch:
		a.searchPage(msg.Outcome.Keyword)
	case msg.Outcome.Event != nil:
		text, kind := describeEvent(*msg.Outcome.Event)
		a.setStatus(text, kind)
	default:
		a.setStatus(MsgOpened(truncateMiddle(msg.Outcome.Target, a.width-10)), StatusSuccess)
	}
}

// indexChanged reloads the entries after the index file changed on disk.
// The load is forced so a cached copy is dropped.
func (a *App) indexChanged(msg provider.IndexChangedMsg) tea.Cmd {
	debuglog.Infof("tui: index file %s changed", msg.Path)
	a.setStatus(MsgIndexChanged, StatusInfo)

	var load tea.Cmd
	if a.deps.Loader != nil {
		load = a.deps.Loader.Load(true)
	}
	return tea.Batch(load, a.nextChange())
}

func (a *App) nextChange() tea.Cmd {
	if a.deps.Watcher == nil {
		return nil
	}
	return a.deps.Watcher.Next()
}
