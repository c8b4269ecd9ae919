package tui

import (
	"errors"
	"fmt"

	"github.com/pders01/spotlight/internal/palette"
)

// wrapErr formats an error with a contextual prefix.
func wrapErr(context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// describeEvent turns a recoverable palette failure into status text.
func describeEvent(ev palette.Event) (string, StatusKind) {
	switch {
	case errors.Is(ev, palette.ErrFetchFailed):
		return "Could not load entries, the list is empty", StatusError
	case errors.Is(ev, palette.ErrURLResolution):
		return "Link could not be resolved, opening it unchanged", StatusWarn
	default:
		return ev.Error(), StatusWarn
	}
}
