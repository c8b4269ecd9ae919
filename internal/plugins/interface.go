package plugins

import (
	"context"
	"net/http"
	"time"
)

// SearchValuePlaceholder marks where the search keywords go in a target URL.
const SearchValuePlaceholder = "~SEARCH_VALUE~"

// Resolution is the outcome of resolving a target URL
type Resolution struct {
	// Original URL as stored in the index
	OriginalURL string
	// URL to navigate to
	URL string
	// Name of the resolver that produced URL, empty when unchanged
	Resolver string
}

// Resolver turns an index URL plus search keywords into a navigable URL
type Resolver interface {
	// Name returns the resolver name for identification
	Name() string

	// CanHandle returns true if this resolver can handle the given URL
	CanHandle(url string) bool

	// Resolve may involve HTTP requests, e.g. asking the server to
	// substitute keywords and add a session checksum.
	Resolve(ctx context.Context, url, keywords string, client *http.Client) (*Resolution, error)

	// Priority returns the priority of this resolver (higher = higher priority)
	// Useful when multiple resolvers can handle the same URL
	Priority() int
}

// Registry manages all registered resolvers
type Registry struct {
	resolvers []Resolver
	client    *http.Client
}

// NewRegistry creates a new resolver registry
func NewRegistry(timeout time.Duration) *Registry {
	return &Registry{
		resolvers: make([]Resolver, 0),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Register adds a resolver to the registry
func (r *Registry) Register(resolver Resolver) {
	r.resolvers = append(r.resolvers, resolver)
}

// FindResolver returns the resolver with highest priority that can
// handle the URL, or nil.
func (r *Registry) FindResolver(url string) Resolver {
	var best Resolver
	highestPriority := -1

	for _, resolver := range r.resolvers {
		if resolver.CanHandle(url) && resolver.Priority() > highestPriority {
			best = resolver
			highestPriority = resolver.Priority()
		}
	}

	return best
}

// Resolve runs the best resolver for url. Without one the URL is
// returned unchanged.
func (r *Registry) Resolve(ctx context.Context, url, keywords string) (*Resolution, error) {
	resolver := r.FindResolver(url)
	if resolver == nil {
		return &Resolution{OriginalURL: url, URL: url}, nil
	}
	return resolver.Resolve(ctx, url, keywords, r.client)
}

// ListResolvers returns all registered resolvers
func (r *Registry) ListResolvers() []Resolver {
	return append([]Resolver(nil), r.resolvers...)
}
