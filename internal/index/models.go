package index

import "strings"

// ActionType tells the navigator what to do with an invoked entry.
type ActionType int

const (
	ActionRedirect ActionType = iota
	ActionSearchPage
)

func (a ActionType) String() string {
	switch a {
	case ActionSearchPage:
		return "search-page"
	default:
		return "redirect"
	}
}

// ParseActionType maps the wire value to an ActionType. Anything
// unrecognised is treated as a redirect.
func ParseActionType(s string) ActionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "search-page", "search_page", "searchpage":
		return ActionSearchPage
	default:
		return ActionRedirect
	}
}

// Entry is one navigable item. Entries are immutable once loaded.
type Entry struct {
	Name        string
	Description string
	URL         string
	Icon        string
	Action      ActionType
	Static      bool
	// Token is a secondary match field (short keywords for the entry).
	Token string
}

// Index holds the entries of one session. It is replaced wholesale on reload.
type Index struct {
	Dynamic []Entry
	Static  []Entry
}

// Partition splits a flat entry list by the Static flag, preserving order.
func Partition(entries []Entry) Index {
	var idx Index
	for _, e := range entries {
		if e.Static {
			idx.Static = append(idx.Static, e)
		} else {
			idx.Dynamic = append(idx.Dynamic, e)
		}
	}
	return idx
}

func (idx Index) Len() int {
	return len(idx.Dynamic) + len(idx.Static)
}

func (idx Index) Empty() bool {
	return idx.Len() == 0
}

