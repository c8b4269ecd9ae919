package plugins

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// SubstituteResolver replaces the first placeholder locally. It is the
// fallback for every URL carrying the placeholder.
type SubstituteResolver struct{}

func NewSubstituteResolver() *SubstituteResolver {
	return &SubstituteResolver{}
}

func (p *SubstituteResolver) Name() string { return "substitute" }

func (p *SubstituteResolver) CanHandle(target string) bool {
	return strings.Contains(target, SearchValuePlaceholder)
}

func (p *SubstituteResolver) Priority() int { return 0 }

func (p *SubstituteResolver) Resolve(_ context.Context, target, keywords string, _ *http.Client) (*Resolution, error) {
	value := keywords
	if isAbsoluteHTTP(target) {
		value = url.QueryEscape(keywords)
	}
	return &Resolution{
		OriginalURL: target,
		URL:         strings.Replace(target, SearchValuePlaceholder, value, 1),
		Resolver:    p.Name(),
	}, nil
}

func isAbsoluteHTTP(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

// SanitizeKeywords replaces characters that break internal link syntax
// with spaces and trims the result.
func SanitizeKeywords(keywords string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case ':', ',', '"', '\'':
			return ' '
		}
		return r
	}, keywords))
}
