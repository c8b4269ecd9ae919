package palette

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/spotlight/internal/debuglog"
	"github.com/pders01/spotlight/internal/index"
)

// Loader starts an index fetch. The returned command must produce a
// DataReadyMsg.
type Loader interface {
	Load(force bool) tea.Cmd
}

// OpenRequest asks the dialog to open. Trigger names whatever should get
// focus back after the dialog closes without an action.
type OpenRequest struct {
	ForceRefresh bool
	Trigger      string
}

// OpenMsg opens the dialog from anywhere in the program.
type OpenMsg OpenRequest

// DataReadyMsg carries a fetched entry list. Err is set when the fetch
// failed; Entries is then empty.
type DataReadyMsg struct {
	Entries []index.Entry
	Err     error
}

// InvokeMsg asks the host to navigate to a redirect row.
type InvokeMsg struct {
	Result   Result
	Keywords string
}

// ClosedMsg is sent after the dialog closed.
type ClosedMsg struct {
	Invoked *Result
	Focus   string
}

// Config configures the dialog component.
type Config struct {
	Options        Options
	Hotkeys        string
	KeysEnabled    bool
	Width          int
	Theme          string
	ShowProcessing bool
}

func DefaultConfig() Config {
	return Config{
		Options:        DefaultOptions(),
		Hotkeys:        "ctrl+k,ctrl+space",
		KeysEnabled:    true,
		Width:          80,
		Theme:          "default",
		ShowProcessing: true,
	}
}

const (
	rowHeight    = 2
	topMargin    = 2
	maxListRows  = 8
	chromeHeight = 5 // border, input, separator, help, border
)

// Model is the overlay dialog as a bubbletea component.
type Model struct {
	cfg       Config
	session   *Session
	input     textinput.Model
	spinner   spinner.Model
	help      help.Model
	keys      overlayKeys
	shortcuts Shortcuts
	theme     Theme

	host     Host
	loader   Loader
	observer Observer

	loading        bool
	pendingPrefill string
	trigger        string

	termWidth  int
	termHeight int
	boxWidth   int
	listHeight int
}

func New(cfg Config, host Host, loader Loader, observer Observer) Model {
	if observer == nil {
		observer = ObserverFuncs{}
	}
	ti := textinput.New()
	ti.Placeholder = cfg.Options.Texts.Placeholder
	ti.Prompt = "› "

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		cfg:       cfg,
		session:   NewSession(cfg.Options),
		input:     ti,
		spinner:   sp,
		help:      help.New(),
		keys:      defaultOverlayKeys(),
		shortcuts: NewShortcuts(cfg.Hotkeys, cfg.KeysEnabled),
		theme:     ThemeByName(cfg.Theme),
		host:      host,
		loader:    loader,
		observer:  observer,
	}
	m.SetSize(100, 30)
	return m
}

func (m Model) Session() *Session        { return m.session }
func (m Model) Shortcuts() Shortcuts     { return m.shortcuts }
func (m Model) IsOpen() bool             { return m.session.State() == StateOpen }
func (m Model) Loading() bool            { return m.loading }
func (m Model) Input() string            { return m.input.Value() }
func (m Model) Announce() Announcement   { return m.session.Announce() }
func (m Model) KeyMap() help.KeyMap      { return m.keys }
func (m Model) OpenBinding() key.Binding { return m.shortcuts.OpenBinding() }

// SetSize lays the overlay out for a terminal of the given size.
func (m *Model) SetSize(width, height int) {
	m.termWidth = width
	m.termHeight = height

	w := m.cfg.Width
	if w <= 0 {
		w = 80
	}
	if w > width-4 {
		w = width - 4
	}
	if w < 20 {
		w = 20
	}
	m.boxWidth = w
	m.input.Width = w - 8

	rows := (height - topMargin - chromeHeight) / rowHeight
	if rows > maxListRows {
		rows = maxListRows
	}
	if rows < 1 {
		rows = 1
	}
	m.listHeight = rows * rowHeight
	m.session.cursor.rowHeight = rowHeight
	m.session.cursor.Resize(m.listHeight)
}

// Open runs the Closed to Open transition.
func (m Model) Open(req OpenRequest) (Model, tea.Cmd) {
	if m.host != nil && m.host.Embedded() {
		debuglog.Debugf("palette: open suppressed, host is embedded")
		return m, nil
	}
	if m.session.State() != StateClosed {
		return m, nil
	}
	m.session.setState(StateOpening)
	m.trigger = req.Trigger

	var cmds []tea.Cmd
	if req.ForceRefresh {
		m.session.Invalidate()
	}
	if !m.session.Fetched() && m.loader != nil && !m.loading {
		m.loading = true
		cmds = append(cmds, m.loader.Load(req.ForceRefresh))
		if m.cfg.ShowProcessing {
			cmds = append(cmds, m.spinner.Tick)
		}
	}
	if m.cfg.Options.PrefillSelection {
		m.stagePrefill()
	}

	if m.host != nil {
		m.host.FreezeScroll()
	}
	cmds = append(cmds, m.input.Focus())
	m.session.setState(StateOpen)
	m.observer.OnOpen()

	if m.pendingPrefill != "" && m.session.Fetched() {
		m.applyPrefill()
	}
	return m, tea.Batch(cmds...)
}

// Close runs the Open to Closed transition. invoked is the row whose
// action caused the close, if any.
func (m Model) Close(invoked *Result) (Model, tea.Cmd) {
	if m.session.State() == StateClosed {
		return m, nil
	}
	m.session.setState(StateClosing)
	if m.host != nil {
		m.host.UnfreezeScroll()
	}
	m.input.Reset()
	m.input.Blur()
	m.session.Reset()
	m.pendingPrefill = ""
	m.observer.OnClose(invoked)
	m.session.setState(StateClosed)

	closed := ClosedMsg{Invoked: invoked, Focus: m.trigger}
	m.trigger = ""
	return m, func() tea.Msg { return closed }
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenMsg:
		return m.Open(OpenRequest(msg))
	case DataReadyMsg:
		return m.dataReady(msg), nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	if m.session.State() != StateOpen {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) dataReady(msg DataReadyMsg) Model {
	m.loading = false
	if msg.Err != nil {
		ev := NewFetchFailure(msg.Err)
		debuglog.Warnf("palette: %v", ev)
		m.observer.OnEvent(ev)
	}

	idx := index.Partition(msg.Entries)
	if m.session.SetIndexFor(idx, m.input.Value()) {
		debuglog.Debugf("palette: re-ran search for %q after data arrived", m.session.Keywords())
	}
	m.observer.OnDataReady(idx.Len())

	if m.pendingPrefill != "" && m.session.State() == StateOpen {
		m.applyPrefill()
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if n, ok := Digit(msg); ok {
		if r, found := m.session.ShortcutTarget(n); found {
			return m.invoke(r)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.session.cursor.Next()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.session.cursor.Prev()
		return m, nil
	case key.Matches(msg, m.keys.Invoke):
		if r, ok := m.session.ActiveResult(); ok {
			return m.invoke(r)
		}
		return m.Close(nil)
	case key.Matches(msg, m.keys.Dismiss):
		return m.Close(nil)
	case key.Matches(msg, m.keys.Escape):
		if m.input.Value() != "" {
			m.input.Reset()
			m.session.Reset()
			return m, nil
		}
		return m.Close(nil)
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.session.SetQuery(m.input.Value())
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	cursor := &m.session.cursor
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		cursor.ScrollBy(-rowHeight)
	case msg.Button == tea.MouseButtonWheelDown:
		cursor.ScrollBy(rowHeight)
	case msg.Action == tea.MouseActionMotion:
		if row, ok := m.rowAt(msg.X, msg.Y); ok {
			cursor.SetActiveByPointer(row)
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !m.inside(msg.X, msg.Y) {
			return m.Close(nil)
		}
		if row, ok := m.rowAt(msg.X, msg.Y); ok {
			cursor.SetActiveByPointer(row)
			if r, found := m.session.ActiveResult(); found {
				return m.invoke(r)
			}
		}
	}
	return m, nil
}

// invoke runs the row's action and closes the dialog.
func (m Model) invoke(r Result) (Model, tea.Cmd) {
	keywords := m.session.Keywords()
	debuglog.WithFields(map[string]interface{}{
		"id":     r.ID,
		"action": r.Action,
	}).Infof("palette: invoke %q", r.Title)

	var action tea.Cmd
	if r.Action == index.ActionSearchPage {
		m.observer.OnInPageSearch(keywords)
	} else {
		action = func() tea.Msg { return InvokeMsg{Result: r, Keywords: keywords} }
	}

	m, closeCmd := m.Close(&r)
	return m, tea.Batch(action, closeCmd)
}

func (m *Model) stagePrefill() {
	if m.host == nil {
		return
	}
	text, err := m.host.SelectedText()
	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		debuglog.Debugf("palette: %s, prefill skipped", NoActiveSelection)
		return
	}
	m.pendingPrefill = text
}

func (m *Model) applyPrefill() {
	text := m.pendingPrefill
	m.pendingPrefill = ""
	m.input.SetValue(text)
	m.input.CursorEnd()
	m.session.SetQuery(text)
}

// origin is the top-left cell of the overlay box.
func (m Model) origin() (x, y int) {
	x = (m.termWidth - m.boxWidth) / 2
	if x < 0 {
		x = 0
	}
	return x, topMargin
}

func (m Model) boxHeight() int {
	return m.listHeight + chromeHeight
}

func (m Model) inside(x, y int) bool {
	ox, oy := m.origin()
	return x >= ox && x < ox+m.boxWidth && y >= oy && y < oy+m.boxHeight()
}

// rowAt maps a screen cell to a result row. The list starts below the
// top border, the input line and the separator.
func (m Model) rowAt(x, y int) (int, bool) {
	if !m.inside(x, y) {
		return 0, false
	}
	_, oy := m.origin()
	return m.session.cursor.RowAt(y - oy - 3)
}
