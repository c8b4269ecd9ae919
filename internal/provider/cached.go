package provider

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/pders01/spotlight/internal/debuglog"
	"github.com/pders01/spotlight/internal/index"
	"github.com/pders01/spotlight/internal/storage"
)

// CachedProvider keeps the last successful fetch in the session cache.
// A cached value counts as a successful fetch. Cache failures are
// logged and otherwise ignored.
type CachedProvider struct {
	next   Provider
	store  *storage.Store
	key    string
	source string
	maxAge time.Duration
	now    func() time.Time
}

func NewCachedProvider(next Provider, store *storage.Store, key, source string, maxAge time.Duration) *CachedProvider {
	return &CachedProvider{
		next:   next,
		store:  store,
		key:    key,
		source: source,
		maxAge: maxAge,
		now:    time.Now,
	}
}

func (p *CachedProvider) Fetch(ctx context.Context) ([]index.Entry, error) {
	if entries, ok := p.lookup(); ok {
		return entries, nil
	}

	entries, err := p.next.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	p.save(entries)
	return entries, nil
}

func (p *CachedProvider) lookup() ([]index.Entry, bool) {
	rec, err := p.store.Get(p.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			debuglog.Warnf("cache read %s: %v", p.key, err)
		}
		debuglog.Debugf("cache miss %s", p.key)
		return nil, false
	}
	if rec.Source != p.source || rec.Expired(p.maxAge, p.now()) {
		debuglog.Debugf("cache stale %s", p.key)
		return nil, false
	}
	entries, err := index.DecodeJSON(bytes.NewReader(rec.Data))
	if err != nil {
		debuglog.Warnf("cache decode %s: %v", p.key, err)
		return nil, false
	}
	debuglog.Debugf("cache hit %s (%d entries)", p.key, len(entries))
	return entries, true
}

func (p *CachedProvider) save(entries []index.Entry) {
	data, err := index.EncodeJSON(entries)
	if err != nil {
		debuglog.Warnf("cache encode %s: %v", p.key, err)
		return
	}
	rec := &storage.Record{Key: p.key, Source: p.source, Data: data, StoredAt: p.now()}
	if err := p.store.Put(rec); err != nil {
		debuglog.Warnf("cache write %s: %v", p.key, err)
	}
}

// Invalidate drops the cached value so the next fetch goes to the source.
func (p *CachedProvider) Invalidate() {
	if err := p.store.Delete(p.key); err != nil {
		debuglog.Warnf("cache invalidate %s: %v", p.key, err)
	}
	if inv, ok := p.next.(Invalidator); ok {
		inv.Invalidate()
	}
}
