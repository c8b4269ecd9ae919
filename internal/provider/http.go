package provider

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pders01/spotlight/internal/debuglog"
	"github.com/pders01/spotlight/internal/index"
)

const (
	defaultUserAgent = "spotlight/1.0 (command palette; github.com/pders01/spotlight)"
	defaultTimeout   = 30 * time.Second
)

// HTTPProvider posts a GET_DATA request to the data endpoint.
type HTTPProvider struct {
	endpoint    string
	client      *http.Client
	userAgent   string
	submitItems []string
	itemValue   func(string) string
}

func NewHTTPProvider(endpoint string, opts Options) *HTTPProvider {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &HTTPProvider{
		endpoint:    endpoint,
		client:      &http.Client{Timeout: timeout},
		userAgent:   ua,
		submitItems: opts.SubmitItems,
		itemValue:   opts.ItemValue,
	}
}

func (p *HTTPProvider) form() url.Values {
	form := url.Values{}
	form.Set("x01", "GET_DATA")
	if len(p.submitItems) > 0 {
		form.Set("pageItems", strings.Join(p.submitItems, ","))
	}
	for _, name := range p.submitItems {
		value := ""
		if p.itemValue != nil {
			value = p.itemValue(name)
		}
		form.Set(name, value)
	}
	return form
}

func (p *HTTPProvider) Fetch(ctx context.Context) ([]index.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(p.form().Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json, application/rss+xml, application/atom+xml, application/xml;q=0.9")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	debuglog.WithFields(map[string]interface{}{
		"endpoint": p.endpoint,
		"status":   resp.StatusCode,
		"type":     mediaType,
	}).Debugf("index response")

	if isFeedType(mediaType) {
		return parseFeed(resp.Body)
	}
	return index.DecodeJSON(resp.Body)
}

func isFeedType(mediaType string) bool {
	return strings.HasSuffix(mediaType, "xml")
}
