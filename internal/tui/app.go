package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/spotlight/internal/config"
	"github.com/pders01/spotlight/internal/debuglog"
	"github.com/pders01/spotlight/internal/navigator"
	"github.com/pders01/spotlight/internal/palette"
	"github.com/pders01/spotlight/internal/provider"
	"github.com/pders01/spotlight/internal/search"
)

// hostPage is the palette's view of the app.
type hostPage struct {
	frozen    bool
	embedded  bool
	clipboard func() (string, error)
}

func (h *hostPage) SelectedText() (string, error) {
	if h.clipboard == nil {
		return "", palette.ErrNoSelection
	}
	return h.clipboard()
}

func (h *hostPage) FreezeScroll()   { h.frozen = true }
func (h *hostPage) UnfreezeScroll() { h.frozen = false }
func (h *hostPage) Embedded() bool  { return h.embedded }

type App struct {
	config     *config.Config
	page       *Page
	deps       Deps
	host       *hostPage
	palette    palette.Model
	keyHandler *KeyHandler
	viewport   viewport.Model

	rendered  renderedPage
	rendering bool
	highlight string
	hits      []search.PageHit
	hitAt     int

	width      int
	height     int
	status     string
	statusKind StatusKind
	err        error

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int // Track the width used for the renderer
}

// NewApp wires the palette onto page. page may be nil, the app then
// shows a welcome screen.
func NewApp(cfg *config.Config, page *Page, deps Deps) *App {
	app := &App{
		config:   cfg,
		page:     page,
		deps:     deps,
		viewport: viewport.New(0, 0),
		host: &hostPage{
			embedded:  deps.Embedded,
			clipboard: deps.Clipboard,
		},
	}

	observer := palette.ObserverFuncs{
		Open: func() {
			debuglog.Debugf("tui: palette opened")
		},
		Close: func(invoked *palette.Result) {
			if invoked == nil {
				debuglog.Debugf("tui: palette dismissed")
			}
		},
		DataReady: func(n int) {
			// An empty list after a failure keeps the error status.
			if n > 0 {
				app.setStatus(MsgEntriesLoaded(n), StatusInfo)
			}
		},
		InPageSearch: app.searchPage,
		Event: func(ev palette.Event) {
			app.setStatus(describeEvent(ev))
		},
	}
	app.palette = palette.New(cfg.PaletteOptions(), app.host, deps.Loader, observer)
	app.keyHandler = NewKeyHandler(app)
	app.SetSize(100, 30)

	return app
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > 120 {
		wordWrapWidth = 120 // maximum for readability
	}
	if wordWrapWidth < 40 {
		wordWrapWidth = 40 // minimum for readability
	}
	if a.width < 50 {
		wordWrapWidth = a.width - 4
		if wordWrapWidth < 20 {
			wordWrapWidth = 20
		}
	}

	if a.glamourRenderer == nil || a.rendererWidth != wordWrapWidth {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen, a.renderPage(), a.nextChange()}
	if a.config.Palette.OpenOnStart {
		cmds = append(cmds, func() tea.Msg { return palette.OpenMsg{Trigger: "start"} })
	}
	return tea.Batch(cmds...)
}

// SetSize lays out the page for a terminal of the given size: a header
// line, the viewport, a separator and the status bar.
func (a *App) SetSize(width, height int) {
	a.width = width
	a.height = height
	a.viewport.Width = width
	a.viewport.Height = max(height-3, 1)
	a.palette.SetSize(width, height)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		return a, a.renderPage()

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		if a.palette.IsOpen() {
			a.palette, cmd = a.palette.Update(msg)
		} else if !a.host.frozen {
			a.viewport, cmd = a.viewport.Update(msg)
		}
		return a, cmd

	case pageRenderedMsg:
		if msg.width != a.width {
			return a, nil // a newer render is on its way
		}
		a.rendering = false
		a.rendered = msg.page
		a.applyContent()
		if len(a.hits) > 0 {
			a.jumpToHit(a.hitAt)
		}
		return a, nil

	case palette.InvokeMsg:
		return a, a.navigate(msg)

	case navigator.NavigatedMsg:
		a.navigated(msg)
		return a, nil

	case palette.ClosedMsg:
		if msg.Focus != "" {
			debuglog.Debugf("tui: focus back to %s", msg.Focus)
		}
		return a, nil

	case provider.IndexChangedMsg:
		return a, a.indexChanged(msg)

	case provider.WatchErrorMsg:
		a.err = wrapErr("watching index", msg.Err)
		return a, a.nextChange()

	case errorMsg:
		a.err = msg.err
		return a, nil
	}

	var cmd tea.Cmd
	a.palette, cmd = a.palette.Update(msg)
	return a, cmd
}

func (a *App) setStatus(text string, kind StatusKind) {
	a.status = text
	a.statusKind = kind
	if kind == StatusSuccess || kind == StatusInfo {
		a.err = nil
	}
}

// applyContent puts the rendered page into the viewport, with the
// current keyword highlighted.
func (a *App) applyContent() {
	lines := a.rendered.lines
	if a.highlight != "" {
		lines, _ = highlightLines(lines, a.highlight)
	}
	a.viewport.SetContent(strings.Join(lines, "\n"))
}

// searchPage is the palette's in-page search action.
func (a *App) searchPage(keyword string) {
	keyword = strings.TrimSpace(keyword)
	if a.page == nil || keyword == "" {
		return
	}
	hits, err := a.page.searcher.SearchPage(keyword, 0)
	if err != nil {
		a.err = wrapErr("in-page search", err)
		return
	}
	debuglog.WithFields(map[string]interface{}{
		"keyword": keyword,
		"hits":    len(hits),
	}).Debugf("tui: in-page search")

	a.highlight = keyword
	a.hits = hits
	a.hitAt = 0
	a.applyContent()
	if len(hits) == 0 {
		a.setStatus(MsgPageHits(keyword, 0), StatusWarn)
		return
	}
	a.setStatus(MsgPageHits(keyword, len(hits)), StatusSuccess)
	a.jumpToHit(0)
}

func (a *App) jumpToHit(i int) {
	if i < 0 || i >= len(a.hits) {
		return
	}
	a.hitAt = i
	p := a.hits[i].Paragraph
	if p < len(a.rendered.starts) {
		a.viewport.SetYOffset(a.rendered.starts[p])
	}
}

// stepHit moves to the next (delta 1) or previous (delta -1) hit,
// wrapping around.
func (a *App) stepHit(delta int) {
	n := len(a.hits)
	if n == 0 {
		return
	}
	a.jumpToHit(((a.hitAt+delta)%n + n) % n)
	a.setStatus(MsgHitPosition(a.highlight, a.hitAt, n), StatusInfo)
}

func (a *App) clearHighlight() {
	if a.highlight == "" {
		return
	}
	a.highlight = ""
	a.hits = nil
	a.hitAt = 0
	a.applyContent()
	a.setStatus(MsgHighlightOff, StatusInfo)
}

func (a *App) View() string {
	bodyHeight := max(a.height-2, 1)

	var content string
	switch {
	case a.palette.IsOpen():
		content = ContentWrapper(a.width, bodyHeight).Render(a.palette.View())
	case a.page == nil:
		content = renderCentered(a.width, bodyHeight, GetWelcomeMessage(a.palette.OpenBinding().Help().Key))
	case a.rendering && len(a.rendered.lines) == 0:
		content = renderCentered(a.width, bodyHeight, renderMuted(MsgRendering))
	default:
		content = lipgloss.JoinVertical(
			lipgloss.Top,
			renderHeader(a.page.Title, a.page.Path, a.width),
			a.viewport.View(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Top, content, renderSeparator(a.width), a.statusBar())
}

func (a *App) statusBar() string {
	limit := a.width - 2
	var text string
	switch {
	case a.err != nil:
		text = StatusErrorStyle.Render("✗ " + truncateEnd(a.err.Error(), limit-2))
	case a.palette.IsOpen():
		text = renderMuted(truncateEnd(a.palette.Announce().Text, limit))
	case a.status != "":
		text = a.statusKind.style().Render(truncateEnd(a.status, limit))
	default:
		text = renderMuted(truncateEnd(strings.Join(a.keyHandler.GetHelp(), " • "), limit))
	}
	return StatusBarStyle.Width(a.width).Render(text)
}
