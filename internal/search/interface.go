package search

// PageHit points at a paragraph of the host page that contains a keyword.
type PageHit struct {
	Paragraph int
	Score     float64
}

// PageSearcher finds paragraphs of the host page for in-page search.
type PageSearcher interface {
	SearchPage(keyword string, limit int) ([]PageHit, error)
}

// DocCounter is implemented by searchers backed by an index.
type DocCounter interface {
	DocCount() (int, error)
}
