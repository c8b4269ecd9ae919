package search

import (
	"strconv"
	"strings"
)

// Query is a trimmed search string split on whitespace.
type Query struct {
	Text  string
	Words []string
}

// ParseQuery trims input and splits it into words.
func ParseQuery(input string) Query {
	text := strings.TrimSpace(input)
	return Query{Text: text, Words: strings.Fields(text)}
}

func (q Query) Empty() bool {
	return q.Text == ""
}

// ShouldSearch reports whether text is long enough to run a search:
// more than one character, or anything that parses as a number.
func ShouldSearch(text string) bool {
	text = strings.TrimSpace(text)
	if len([]rune(text)) > 1 {
		return true
	}
	if text == "" {
		return false
	}
	_, err := strconv.ParseFloat(text, 64)
	return err == nil
}
