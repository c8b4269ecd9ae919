package storage

import (
	"encoding/json"
	"time"
)

// Record is one cached index payload.
type Record struct {
	Key      string          `json:"key"`
	Source   string          `json:"source"`
	Data     json.RawMessage `json:"data"`
	ETag     string          `json:"etag,omitempty"`
	StoredAt time.Time       `json:"stored_at"`
}

// Expired reports whether the record is older than ttl. A zero ttl never
// expires.
func (r *Record) Expired(ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(r.StoredAt) > ttl
}
