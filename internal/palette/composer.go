package palette

import (
	"fmt"
	"strings"

	"github.com/pders01/spotlight/internal/index"
	"github.com/pders01/spotlight/internal/search"
)

const (
	DefaultMaxResults = 50
	maxShortcuts      = 9

	IconSearchPage = "fa-window-search"
	IconDefault    = "icon-search"
)

// Result is one rendered row.
type Result struct {
	ID          string
	Title       string
	Description string
	URL         string
	Action      index.ActionType
	Icon        string
	Static      bool
	Shortcut    string
}

// ComposeOptions controls which add-ons are offered and how many rows
// survive.
type ComposeOptions struct {
	MaxResults             int
	IncludeSearchPageEntry bool
	SearchPageLabel        string
}

// Composition is the rendered list plus what it was built from.
type Composition struct {
	Results                []Result
	ContainsDynamicMatches bool
}

func (c Composition) Len() int { return len(c.Results) }

// Compose puts ranked matches first and the add-ons after them, then
// truncates to MaxResults. Add-ons can be cut off entirely when the
// matches alone fill the list.
func Compose(matches []search.Match, static []index.Entry, opts ComposeOptions) Composition {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	rows := make([]Result, 0, len(matches)+len(static)+1)
	for _, m := range matches {
		rows = append(rows, resultFromEntry(m.Entry))
	}
	dynamic := len(rows)

	counter := 0
	if opts.IncludeSearchPageEntry {
		counter++
		rows = append(rows, Result{
			Title:    opts.SearchPageLabel,
			Action:   index.ActionSearchPage,
			Icon:     IconSearchPage,
			Static:   true,
			Shortcut: shortcutLabel(counter),
		})
	}
	for _, e := range static {
		counter++
		r := resultFromEntry(e)
		if counter <= maxShortcuts {
			r.Shortcut = shortcutLabel(counter)
		}
		rows = append(rows, r)
	}

	if len(rows) > limit {
		rows = rows[:limit]
	}
	for i := range rows {
		rows[i].ID = fmt.Sprintf("result-%d", i)
	}

	return Composition{
		Results:                rows,
		ContainsDynamicMatches: dynamic > 0,
	}
}

func resultFromEntry(e index.Entry) Result {
	return Result{
		Title:       e.Name,
		Description: e.Description,
		URL:         e.URL,
		Action:      e.Action,
		Icon:        normalizeIcon(e.Icon),
		Static:      e.Static,
	}
}

func shortcutLabel(n int) string {
	return fmt.Sprintf("Ctrl+%d", n)
}

// normalizeIcon keeps icon-font names and falls back to the search icon.
func normalizeIcon(icon string) string {
	if strings.HasPrefix(icon, "fa-") || strings.HasPrefix(icon, "icon-") {
		return icon
	}
	return IconDefault
}
