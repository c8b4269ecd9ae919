package search

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"
)

type bleveEngine struct {
	idx        bleve.Index
	paragraphs []string
}

// NewPageSearcher indexes the paragraphs of a page in memory. If the
// index cannot be built a plain substring searcher is returned instead.
func NewPageSearcher(paragraphs []string) PageSearcher {
	be, err := newBleveEngine(paragraphs)
	if err != nil {
		return substringSearcher{paragraphs: paragraphs}
	}
	return be
}

func newBleveEngine(paragraphs []string) (*bleveEngine, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}

	batch := idx.NewBatch()
	for i, p := range paragraphs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if err := batch.Index(docIDForParagraph(i), map[string]any{"text": p}); err != nil {
			return nil, err
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, err
	}
	return &bleveEngine{idx: idx, paragraphs: paragraphs}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()
	text := bleve.NewTextFieldMapping()
	text.Analyzer = standard.Name
	text.Store = false
	text.IncludeTermVectors = false
	dm.AddFieldMappingsAt("text", text)

	im.DefaultMapping = dm
	return im
}

// SearchPage returns hits in page order so the first hit is the first
// occurrence on the page.
func (b *bleveEngine) SearchPage(keyword string, limit int) ([]PageHit, error) {
	tokens := tokenize(keyword)
	if len(tokens) == 0 {
		return []PageHit{}, nil
	}
	if limit <= 0 {
		limit = len(b.paragraphs)
	}

	var qs []bleveQuery.Query
	for _, tok := range tokens {
		qm := bleve.NewMatchQuery(tok)
		qm.SetField("text")
		qm.SetBoost(2.0)
		qs = append(qs, qm)
		qp := bleve.NewPrefixQuery(tok)
		qp.SetField("text")
		qs = append(qs, qp)
	}
	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	res, err := b.idx.Search(req)
	if err != nil {
		return nil, err
	}

	hits := make([]PageHit, 0, len(res.Hits))
	for _, h := range res.Hits {
		n, err := paragraphFromDocID(h.ID)
		if err != nil {
			continue
		}
		hits = append(hits, PageHit{Paragraph: n, Score: h.Score})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Paragraph < hits[j].Paragraph })
	return hits, nil
}

// DocCount reports the number of indexed paragraphs.
func (b *bleveEngine) DocCount() (int, error) {
	n, err := b.idx.DocCount()
	return int(n), err
}

// substringSearcher is the fallback when no index could be built.
type substringSearcher struct {
	paragraphs []string
}

func (s substringSearcher) SearchPage(keyword string, limit int) ([]PageHit, error) {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	hits := []PageHit{}
	if needle == "" {
		return hits, nil
	}
	for i, p := range s.paragraphs {
		if strings.Contains(strings.ToLower(p), needle) {
			hits = append(hits, PageHit{Paragraph: i, Score: 1})
			if limit > 0 && len(hits) == limit {
				break
			}
		}
	}
	return hits, nil
}

// tokenize lowercases text and splits it on anything that is not a
// letter or a digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func docIDForParagraph(n int) string { return "p:" + strconv.Itoa(n) }

func paragraphFromDocID(id string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(id, "p:"))
}
