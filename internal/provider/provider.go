// Package provider fetches the entry list the palette searches.
package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pders01/spotlight/internal/index"
)

// Provider returns the full entry list. Implementations must be safe to
// call from a goroutine other than the UI loop.
type Provider interface {
	Fetch(ctx context.Context) ([]index.Entry, error)
}

// Invalidator is implemented by providers that hold cached data.
type Invalidator interface {
	Invalidate()
}

var ErrNoSource = errors.New("no data source configured")

// Options configures providers built by FromSource.
type Options struct {
	Timeout     time.Duration
	UserAgent   string
	SubmitItems []string
	// ItemValue returns the current value of a submit item.
	ItemValue func(name string) string
}

// FromSource picks an HTTP provider for http(s) URLs and a file provider
// for everything else.
func FromSource(source string, opts Options) (Provider, error) {
	source = strings.TrimSpace(source)
	switch {
	case source == "":
		return nil, ErrNoSource
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return NewHTTPProvider(source, opts), nil
	default:
		return NewFileProvider(source), nil
	}
}

// Empty stands in when no source is configured. Every fetch fails with
// ErrNoSource so the palette reports it and stays usable.
type Empty struct{}

func (Empty) Fetch(context.Context) ([]index.Entry, error) { return nil, ErrNoSource }
