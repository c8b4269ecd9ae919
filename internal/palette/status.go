package palette

import "strconv"

// Texts are the user-facing strings of the overlay.
type Texts struct {
	Placeholder     string
	MoreChars       string
	NoMatch         string
	OneMatch        string
	MultipleMatches string
	InPageSearch    string
}

func DefaultTexts() Texts {
	return Texts{
		Placeholder:     "Search...",
		MoreChars:       "Please enter at least 2 characters",
		NoMatch:         "No match found",
		OneMatch:        "1 match found",
		MultipleMatches: "matches found",
		InPageSearch:    "Search on current Page",
	}
}

// Announcement is the live-region status emitted after every render or
// cursor move.
type Announcement struct {
	Text     string
	Expanded bool
	ActiveID string
}

// Announce builds the live-region text for the session's current state.
// Rows carrying a shortcut label are not counted as matches.
func (s *Session) Announce() Announcement {
	rows := s.results.Results

	count := 0
	for _, r := range rows {
		if r.Shortcut == "" {
			count++
		}
	}

	var status string
	switch {
	case s.keywords == "":
		status = s.texts.MoreChars
	case count == 0:
		status = s.texts.NoMatch
	case count == 1:
		status = s.texts.OneMatch
	default:
		status = strconv.Itoa(count) + " " + s.texts.MultipleMatches
	}

	a := Announcement{Expanded: len(rows) > 0}
	label := ""
	if r, ok := s.ActiveResult(); ok {
		label = r.Title
		a.ActiveID = r.ID
	}
	a.Text = label + ", " + status
	return a
}
