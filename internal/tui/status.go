package tui

import (
	"fmt"
	"strings"
)

// Canonical short status messages used across the app.
const (
	MsgRendering     = "Rendering page…"
	MsgIndexChanged  = "Index file changed, reloading…"
	MsgNoPalette     = "spotlight is disabled in embedded mode"
	MsgHighlightOff  = "Highlight cleared"
	MsgNavigatorNone = "No navigator configured"
)

func MsgOpening(title string) string {
	return fmt.Sprintf("Opening '%s'…", strings.TrimSpace(title))
}

func MsgOpened(target string) string {
	return "Opened " + target
}

func MsgEntriesLoaded(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

func MsgPageHits(keyword string, n int) string {
	if n == 0 {
		return fmt.Sprintf("'%s' not found on this page", keyword)
	}
	if n == 1 {
		return fmt.Sprintf("'%s': 1 paragraph", keyword)
	}
	return fmt.Sprintf("'%s': %d paragraphs", keyword, n)
}

// MsgHitPosition reports where n/N navigation is.
func MsgHitPosition(keyword string, at, total int) string {
	return fmt.Sprintf("'%s': %d/%d", keyword, at+1, total)
}
