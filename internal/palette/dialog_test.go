package palette

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/spotlight/internal/index"
)

type fakeHost struct {
	selection string
	selErr    error
	embedded  bool
	frozen    int
}

func (h *fakeHost) SelectedText() (string, error) { return h.selection, h.selErr }
func (h *fakeHost) FreezeScroll()                 { h.frozen++ }
func (h *fakeHost) UnfreezeScroll()               { h.frozen-- }
func (h *fakeHost) Embedded() bool                { return h.embedded }

type fakeLoader struct {
	calls []bool
}

func (l *fakeLoader) Load(force bool) tea.Cmd {
	l.calls = append(l.calls, force)
	return func() tea.Msg { return DataReadyMsg{Entries: fixtureEntries()} }
}

type recorder struct {
	opens    int
	closes   []*Result
	ready    []int
	inPage   []string
	events   []Event
	observer ObserverFuncs
}

func newRecorder() *recorder {
	r := &recorder{}
	r.observer = ObserverFuncs{
		Open:         func() { r.opens++ },
		Close:        func(invoked *Result) { r.closes = append(r.closes, invoked) },
		DataReady:    func(n int) { r.ready = append(r.ready, n) },
		InPageSearch: func(k string) { r.inPage = append(r.inPage, k) },
		Event:        func(ev Event) { r.events = append(r.events, ev) },
	}
	return r
}

type harness struct {
	m      Model
	host   *fakeHost
	loader *fakeLoader
	rec    *recorder
}

func newHarness(t *testing.T, mutate func(*Config)) *harness {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	h := &harness{host: &fakeHost{}, loader: &fakeLoader{}, rec: newRecorder()}
	h.m = New(cfg, h.host, h.loader, h.rec.observer)
	return h
}

func (h *harness) open(req OpenRequest) tea.Cmd {
	var cmd tea.Cmd
	h.m, cmd = h.m.Open(req)
	return cmd
}

func (h *harness) deliver() {
	h.m, _ = h.m.Update(DataReadyMsg{Entries: fixtureEntries()})
}

func (h *harness) send(msg tea.Msg) []tea.Msg {
	var cmd tea.Cmd
	h.m, cmd = h.m.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok && h.m.IsOpen() {
		// typing returns cursor blink commands
		return nil
	}
	return drain(cmd)
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// drain runs cmd and flattens batches into their messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func TestDialog_OpenFetchesOnce(t *testing.T) {
	h := newHarness(t, nil)

	require.NotNil(t, h.open(OpenRequest{}))
	assert.True(t, h.m.IsOpen())
	assert.True(t, h.m.Loading())
	assert.Equal(t, []bool{false}, h.loader.calls)
	assert.Equal(t, 1, h.host.frozen)
	assert.Equal(t, 1, h.rec.opens)

	h.deliver()
	assert.False(t, h.m.Loading())
	assert.Equal(t, []int{7}, h.rec.ready)

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, h.m.IsOpen())
	assert.Equal(t, 0, h.host.frozen)

	h.open(OpenRequest{})
	assert.Len(t, h.loader.calls, 1, "cached index is reused")
	assert.False(t, h.m.Loading())

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	h.open(OpenRequest{ForceRefresh: true})
	assert.Equal(t, []bool{false, true}, h.loader.calls)
}

func TestDialog_OpenWhileOpenIsNoop(t *testing.T) {
	h := newHarness(t, nil)
	h.open(OpenRequest{})
	assert.Nil(t, h.open(OpenRequest{}))
	assert.Equal(t, 1, h.rec.opens)
	assert.Len(t, h.loader.calls, 1)
}

func TestDialog_EmbeddedHostNeverOpens(t *testing.T) {
	h := newHarness(t, nil)
	h.host.embedded = true

	assert.Nil(t, h.open(OpenRequest{}))
	assert.False(t, h.m.IsOpen())
	assert.Zero(t, h.rec.opens)
	assert.Empty(t, h.loader.calls)
}

func TestDialog_OpenMsg(t *testing.T) {
	h := newHarness(t, nil)
	h.m, _ = h.m.Update(OpenMsg{Trigger: "page"})
	assert.True(t, h.m.IsOpen())

	msgs := h.send(tea.KeyMsg{Type: tea.KeyTab})
	closed, ok := findMsg[ClosedMsg](msgs)
	require.True(t, ok)
	assert.Nil(t, closed.Invoked)
	assert.Equal(t, "page", closed.Focus)
}

func TestDialog_TypingSearches(t *testing.T) {
	h := newHarness(t, nil)
	h.open(OpenRequest{})
	h.deliver()

	h.typeText("orders")
	assert.Equal(t, "orders", h.m.Input())
	assert.Equal(t, "orders", h.m.Session().Keywords())
	assert.Len(t, h.m.Session().Results(), 6)
	assert.Equal(t, "Orders Overview, 2 matches found", h.m.Announce().Text)
}

func TestDialog_SearchBeforeDataArrives(t *testing.T) {
	h := newHarness(t, nil)
	h.open(OpenRequest{})
	h.typeText("orders")
	assert.Len(t, h.m.Session().Results(), 1, "only the search page entry")

	h.deliver()
	assert.Len(t, h.m.Session().Results(), 6)
}

func TestDialog_EscapeIsTwoStage(t *testing.T) {
	h := newHarness(t, nil)
	h.open(OpenRequest{})
	h.deliver()
	h.typeText("orders")

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, h.m.IsOpen())
	assert.Empty(t, h.m.Input())
	assert.Empty(t, h.m.Session().Results())

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, h.m.IsOpen())
	require.Len(t, h.rec.closes, 1)
	assert.Nil(t, h.rec.closes[0])
}

func TestDialog_EnterInvokesRedirect(t *testing.T) {
	h := newHarness(t, nil)
	h.open(OpenRequest{})
	h.deliver()
	h.typeText("orders")
	h.send(tea.KeyMsg{Type: tea.KeyDown})

	msgs := h.send(tea.KeyMsg{Type: tea.KeyEnter})

	inv, ok := findMsg[InvokeMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, "Search Orders", inv.Result.Title)
	assert.Equal(t, "orders", inv.Keywords)

	closed, ok := findMsg[ClosedMsg](msgs)
	require.True(t, ok)
	require.NotNil(t, closed.Invoked)
	assert.Equal(t, "Search Orders", closed.Invoked.Title)

	assert.False(t, h.m.IsOpen())
	assert.Empty(t, h.m.Input())
	assert.Empty(t, h.m.Session().Results())
	assert.Empty(t, h.m.Session().Keywords())
}

func TestDialog_EnterWithoutRowsCloses(t *testing.T) {
	h := newHarness(t, nil)
	h.open(OpenRequest{})
	h.deliver()

	msgs := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	_, invoked := findMsg[InvokeMsg](msgs)
	assert.False(t, invoked)
	assert.False(t, h.m.IsOpen())
}

func TestDialog_ShortcutRunsInPageSearch(t *testing.T) {
	h := newHarness(t, nil)
	h.open(OpenRequest{})
	h.deliver()
	h.typeText("orders")

	msgs := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}, Alt: true})

	assert.Equal(t, []string{"orders"}, h.rec.inPage)
	_, invoked := findMsg[InvokeMsg](msgs)
	assert.False(t, invoked, "in-page search needs no navigation")
	_, closed := findMsg[ClosedMsg](msgs)
	assert.True(t, closed)
	assert.False(t, h.m.IsOpen())
}

func TestDialog_ShortcutInvokesStaticEntry(t *testing.T) {
	h := newHarness(t, nil)
	h.open(OpenRequest{})
	h.deliver()
	h.typeText("orders")

	msgs := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}, Alt: true})
	inv, ok := findMsg[InvokeMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, "Settings", inv.Result.Title)
}

func TestDialog_ShortcutWithoutTargetIsIgnored(t *testing.T) {
	h := newHarness(t, nil)
	h.open(OpenRequest{})
	h.deliver()
	h.typeText("orders")

	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}, Alt: true})
	assert.True(t, h.m.IsOpen())
}

func TestDialog_FetchFailureKeepsDialogUsable(t *testing.T) {
	h := newHarness(t, nil)
	h.open(OpenRequest{})
	h.m, _ = h.m.Update(DataReadyMsg{Err: errors.New("503 service unavailable")})

	require.Len(t, h.rec.events, 1)
	assert.Equal(t, FetchFailure, h.rec.events[0].Kind)
	assert.ErrorIs(t, h.rec.events[0], ErrFetchFailed)
	assert.True(t, h.m.IsOpen())
	assert.True(t, h.m.Session().Fetched())

	h.typeText("orders")
	assert.Equal(t, []string{"Search on current Page"}, titles(h.m.Session().Results()))
}

func TestDialog_PrefillDeferredUntilData(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.Options.PrefillSelection = true })
	h.host.selection = "  orders "

	h.open(OpenRequest{})
	assert.Empty(t, h.m.Input())

	h.deliver()
	assert.Equal(t, "orders", h.m.Input())
	assert.Len(t, h.m.Session().Results(), 6)
}

func TestDialog_PrefillImmediateWhenFetched(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.Options.PrefillSelection = true })
	h.open(OpenRequest{})
	h.deliver()
	h.send(tea.KeyMsg{Type: tea.KeyEsc})

	h.host.selection = "dashboard"
	h.open(OpenRequest{})
	assert.Equal(t, "dashboard", h.m.Input())
	require.NotEmpty(t, h.m.Session().Results())
	assert.Equal(t, "Dashboard", h.m.Session().Results()[0].Title)
}

func TestDialog_PrefillSkippedWithoutSelection(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.Options.PrefillSelection = true })
	h.host.selErr = errors.New("clipboard unavailable")
	h.open(OpenRequest{})
	h.deliver()
	assert.Empty(t, h.m.Input())
	assert.Empty(t, h.rec.events, "a missing selection is not reported")
}

func TestDialog_MouseClickOutsideCloses(t *testing.T) {
	h := newHarness(t, nil)
	h.open(OpenRequest{})
	h.deliver()

	h.send(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, h.m.IsOpen())
}

func TestDialog_MouseHoverAndClick(t *testing.T) {
	h := newHarness(t, nil)
	h.m.SetSize(100, 30)
	h.open(OpenRequest{})
	h.deliver()
	h.typeText("orders")

	// box at x=10, y=2; list starts three lines below
	h.send(tea.MouseMsg{X: 20, Y: 7, Action: tea.MouseActionMotion})
	r, ok := h.m.Session().ActiveResult()
	require.True(t, ok)
	assert.Equal(t, "Search Orders", r.Title)

	msgs := h.send(tea.MouseMsg{X: 20, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	inv, ok := findMsg[InvokeMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, "Orders Overview", inv.Result.Title)
	assert.False(t, h.m.IsOpen())
}

func TestDialog_CloseAlwaysResets(t *testing.T) {
	tests := []struct {
		name  string
		close []tea.Msg
	}{
		{name: "enter", close: []tea.Msg{tea.KeyMsg{Type: tea.KeyEnter}}},
		{name: "tab", close: []tea.Msg{tea.KeyMsg{Type: tea.KeyTab}}},
		{name: "shift+tab", close: []tea.Msg{tea.KeyMsg{Type: tea.KeyShiftTab}}},
		{name: "escape twice", close: []tea.Msg{tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyEsc}}},
		{name: "click outside", close: []tea.Msg{
			tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			h.m.SetSize(100, 30)
			h.open(OpenRequest{})
			h.deliver()
			h.typeText("orders")
			h.send(tea.KeyMsg{Type: tea.KeyDown})
			_, ok := h.m.Session().Cursor().Active()
			require.True(t, ok)

			for _, msg := range tt.close {
				h.send(msg)
			}

			assert.False(t, h.m.IsOpen())
			assert.Empty(t, h.m.Input())
			assert.Empty(t, h.m.Session().Keywords())
			assert.Empty(t, h.m.Session().Results())
			_, ok = h.m.Session().Cursor().Active()
			assert.False(t, ok)
		})
	}
}

func TestDialog_DataRerunsCurrentInput(t *testing.T) {
	h := newHarness(t, nil)
	h.open(OpenRequest{})
	h.typeText("o")
	assert.Empty(t, h.m.Session().Keywords())

	h.deliver()
	assert.Equal(t, "o", h.m.Session().Keywords())
	assert.True(t, h.m.Session().Composition().ContainsDynamicMatches)
}

func TestDialog_IgnoresInputWhileClosed(t *testing.T) {
	h := newHarness(t, nil)
	h.typeText("orders")
	assert.Empty(t, h.m.Input())
	assert.Empty(t, h.m.Session().Results())
}

func TestDialog_View(t *testing.T) {
	h := newHarness(t, nil)
	assert.Empty(t, h.m.View())

	h.open(OpenRequest{})
	h.deliver()
	h.typeText("orders")

	view := h.m.View()
	assert.Contains(t, view, "Orders Overview")
	assert.Contains(t, view, "Ctrl+1")
	assert.Contains(t, view, "All orders")
}

func TestDialog_DataAfterCloseIsStored(t *testing.T) {
	h := newHarness(t, nil)
	h.open(OpenRequest{})
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	h.deliver()

	assert.True(t, h.m.Session().Fetched())
	assert.Equal(t, 7, h.m.Session().Index().Len())
	assert.Empty(t, h.m.Session().Results())
	assert.Equal(t, index.ActionRedirect, h.m.Session().Index().Dynamic[0].Action)
}
