package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pders01/spotlight/internal/index"
)

// FileProvider reads a local index file. The format follows the
// extension: .json, .toml, or .xml/.rss/.atom feeds.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Path() string { return p.path }

func (p *FileProvider) Fetch(ctx context.Context) ([]index.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("opening index file: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(p.path)); ext {
	case ".json":
		return index.DecodeJSON(f)
	case ".toml":
		return index.DecodeTOML(f)
	case ".xml", ".rss", ".atom":
		return parseFeed(f)
	default:
		return nil, fmt.Errorf("unsupported index file type %q", ext)
	}
}
