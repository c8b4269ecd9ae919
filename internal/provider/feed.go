package provider

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/pders01/spotlight/internal/index"
)

const feedIcon = "fa-rss"

// parseFeed turns RSS or Atom items into redirect entries. Item
// categories become the search token.
func parseFeed(r io.Reader) ([]index.Entry, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	entries := make([]index.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || strings.TrimSpace(item.Title) == "" {
			continue
		}
		entries = append(entries, index.Entry{
			Name:        strings.TrimSpace(item.Title),
			Description: strings.TrimSpace(item.Description),
			URL:         itemLink(item),
			Icon:        feedIcon,
			Action:      index.ActionRedirect,
			Token:       strings.Join(item.Categories, " "),
		})
	}
	return entries, nil
}

func itemLink(item *gofeed.Item) string {
	if item.Link != "" {
		return item.Link
	}
	for _, enclosure := range item.Enclosures {
		if enclosure.URL != "" {
			return enclosure.URL
		}
	}
	return ""
}
