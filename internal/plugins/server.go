package plugins

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ServerResolver asks the application server to build internal links.
// The server substitutes the keywords and adds whatever session state
// the link needs.
type ServerResolver struct {
	endpoint string
	prefix   string
}

func NewServerResolver(endpoint, prefix string) *ServerResolver {
	return &ServerResolver{endpoint: endpoint, prefix: prefix}
}

func (s *ServerResolver) Name() string { return "server" }

func (s *ServerResolver) CanHandle(target string) bool {
	return s.endpoint != "" && s.prefix != "" && strings.HasPrefix(target, s.prefix)
}

func (s *ServerResolver) Priority() int { return 100 }

type resolveResponse struct {
	URL string `json:"url"`
}

func (s *ServerResolver) Resolve(ctx context.Context, target, keywords string, client *http.Client) (*Resolution, error) {
	form := url.Values{}
	form.Set("x01", "GET_URL")
	form.Set("x02", keywords)
	form.Set("x03", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resolving url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	var body resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding resolved url: %w", err)
	}
	if body.URL == "" {
		return nil, errors.New("server returned no url")
	}

	return &Resolution{OriginalURL: target, URL: body.URL, Resolver: s.Name()}, nil
}
