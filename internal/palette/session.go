package palette

import (
	"github.com/pders01/spotlight/internal/debuglog"
	"github.com/pders01/spotlight/internal/index"
	"github.com/pders01/spotlight/internal/search"
)

// State is the dialog lifecycle state.
type State int

const (
	StateClosed State = iota
	StateOpening
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Options configures a Session.
type Options struct {
	MaxResults       int
	InPageSearch     bool
	PrefillSelection bool
	Texts            Texts
}

func DefaultOptions() Options {
	return Options{
		MaxResults:   DefaultMaxResults,
		InPageSearch: true,
		Texts:        DefaultTexts(),
	}
}

// Session owns everything one overlay instance works on: the index, the
// last searched keywords, the rendered results, the cursor and the
// lifecycle state. It is not safe for concurrent use; the event loop is
// its only writer.
type Session struct {
	opts    Options
	texts   Texts
	index   index.Index
	fetched bool

	keywords string
	results  Composition
	cursor   Cursor
	state    State
}

func NewSession(opts Options) *Session {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	return &Session{
		opts:   opts,
		texts:  opts.Texts,
		cursor: NewCursor(0, 1),
	}
}

func (s *Session) State() State             { return s.state }
func (s *Session) Keywords() string         { return s.keywords }
func (s *Session) Index() index.Index       { return s.index }
func (s *Session) Fetched() bool            { return s.fetched }
func (s *Session) Results() []Result        { return s.results.Results }
func (s *Session) Cursor() *Cursor          { return &s.cursor }
func (s *Session) Options() Options         { return s.opts }
func (s *Session) Composition() Composition { return s.results }

func (s *Session) setState(next State) {
	if s.state == next {
		return
	}
	debuglog.WithFields(map[string]interface{}{
		"from": s.state,
		"to":   next,
	}).Debugf("palette state change")
	s.state = next
}

// SetIndex replaces the index wholesale and re-runs the last keywords.
// See SetIndexFor.
func (s *Session) SetIndex(idx index.Index) bool {
	return s.SetIndexFor(idx, s.keywords)
}

// SetIndexFor replaces the index wholesale. When the current list holds
// no dynamic matches and input is not blank, input is searched against
// the new index even if SetQuery skipped it; the return value reports
// that.
func (s *Session) SetIndexFor(idx index.Index, input string) bool {
	s.index = idx
	s.fetched = true
	if s.results.ContainsDynamicMatches || search.ParseQuery(input).Empty() {
		return false
	}
	s.search(input)
	return true
}

// Invalidate forgets that the index was fetched so the next open
// fetches again.
func (s *Session) Invalidate() {
	s.fetched = false
}

// SetQuery applies the raw input text and reports whether the rendered
// list changed. Empty input resets the list. A single non-numeric
// character and input equal to the current keywords are ignored.
func (s *Session) SetQuery(input string) bool {
	q := search.ParseQuery(input)
	if q.Empty() {
		if s.keywords == "" && s.results.Len() == 0 {
			return false
		}
		s.Reset()
		return true
	}
	if !search.ShouldSearch(q.Text) || q.Text == s.keywords {
		return false
	}
	s.search(q.Text)
	return true
}

func (s *Session) search(keywords string) {
	q := search.ParseQuery(keywords)
	s.keywords = q.Text
	matches := search.Rank(q, s.index.Dynamic)
	s.results = Compose(matches, s.index.Static, ComposeOptions{
		MaxResults:             s.opts.MaxResults,
		IncludeSearchPageEntry: s.opts.InPageSearch,
		SearchPageLabel:        s.texts.InPageSearch,
	})
	s.cursor.Reset(s.results.Len())

	debuglog.WithFields(map[string]interface{}{
		"keywords": s.keywords,
		"matches":  len(matches),
		"rows":     s.results.Len(),
	}).Debugf("search")
}

// Reset clears keywords, results and cursor.
func (s *Session) Reset() {
	s.keywords = ""
	s.results = Composition{}
	s.cursor.Clear()
}

// ActiveResult returns the row under the cursor.
func (s *Session) ActiveResult() (Result, bool) {
	i, ok := s.cursor.Active()
	if !ok {
		return Result{}, false
	}
	return s.results.Results[i], true
}

// ShortcutTarget returns the n-th rendered row that carries a shortcut
// label, counting from 1.
func (s *Session) ShortcutTarget(n int) (Result, bool) {
	if n < 1 {
		return Result{}, false
	}
	seen := 0
	for _, r := range s.results.Results {
		if r.Shortcut == "" {
			continue
		}
		seen++
		if seen == n {
			return r, true
		}
	}
	return Result{}, false
}
