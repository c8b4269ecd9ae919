package index

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// wireEntry is the compact JSON form served by data endpoints and kept
// in the session cache.
type wireEntry struct {
	Name        string `json:"n"`
	Description string `json:"d,omitempty"`
	URL         string `json:"u,omitempty"`
	Icon        string `json:"i,omitempty"`
	Type        string `json:"t,omitempty"`
	Static      bool   `json:"s"`
	Token       string `json:"k,omitempty"`
}

// fileEntry is the long-form shape used by hand-written TOML index files.
type fileEntry struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	URL         string `toml:"url"`
	Icon        string `toml:"icon"`
	Type        string `toml:"type"`
	Static      bool   `toml:"static"`
	Token       string `toml:"token"`
}

type fileIndex struct {
	Entries []fileEntry `toml:"entry"`
}

// DecodeJSON reads a JSON array of compact entries.
func DecodeJSON(r io.Reader) ([]Entry, error) {
	var raw []wireEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding index: %w", err)
	}
	entries := make([]Entry, 0, len(raw))
	for _, w := range raw {
		entries = append(entries, Entry{
			Name:        w.Name,
			Description: w.Description,
			URL:         w.URL,
			Icon:        w.Icon,
			Action:      ParseActionType(w.Type),
			Static:      w.Static,
			Token:       w.Token,
		})
	}
	return entries, nil
}

// EncodeJSON is the inverse of DecodeJSON.
func EncodeJSON(entries []Entry) ([]byte, error) {
	raw := make([]wireEntry, 0, len(entries))
	for _, e := range entries {
		raw = append(raw, wireEntry{
			Name:        e.Name,
			Description: e.Description,
			URL:         e.URL,
			Icon:        e.Icon,
			Type:        e.Action.String(),
			Static:      e.Static,
			Token:       e.Token,
		})
	}
	return json.Marshal(raw)
}

// DecodeTOML reads [[entry]] tables.
func DecodeTOML(r io.Reader) ([]Entry, error) {
	var f fileIndex
	if err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding toml index: %w", err)
	}
	entries := make([]Entry, 0, len(f.Entries))
	for _, fe := range f.Entries {
		entries = append(entries, Entry{
			Name:        fe.Name,
			Description: fe.Description,
			URL:         fe.URL,
			Icon:        fe.Icon,
			Action:      ParseActionType(fe.Type),
			Static:      fe.Static,
			Token:       fe.Token,
		})
	}
	return entries, nil
}
