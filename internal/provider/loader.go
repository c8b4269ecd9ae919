package provider

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/singleflight"

	"github.com/pders01/spotlight/internal/debuglog"
	"github.com/pders01/spotlight/internal/index"
	"github.com/pders01/spotlight/internal/palette"
)

// Loader runs fetches for the palette. Concurrent loads share one
// request.
type Loader struct {
	provider Provider
	timeout  time.Duration
	group    singleflight.Group
}

func NewLoader(p Provider, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Loader{provider: p, timeout: timeout}
}

// Fetch returns the entry list. force drops cached data first and never
// joins a fetch already in flight.
func (l *Loader) Fetch(ctx context.Context, force bool) ([]index.Entry, error) {
	if force {
		if inv, ok := l.provider.(Invalidator); ok {
			inv.Invalidate()
		}
		l.group.Forget("index")
	}

	v, err, shared := l.group.Do("index", func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(ctx, l.timeout)
		defer cancel()
		return l.provider.Fetch(ctx)
	})
	if err != nil {
		debuglog.Errorf("index fetch failed: %v", err)
		return nil, err
	}

	entries := v.([]index.Entry)
	debuglog.WithFields(map[string]interface{}{
		"entries": len(entries),
		"shared":  shared,
	}).Infof("index fetched")
	return entries, nil
}

// Load implements palette.Loader. A failed fetch yields an empty list
// and the error.
func (l *Loader) Load(force bool) tea.Cmd {
	return func() tea.Msg {
		entries, err := l.Fetch(context.Background(), force)
		if err != nil {
			return palette.DataReadyMsg{Err: err}
		}
		return palette.DataReadyMsg{Entries: entries}
	}
}
