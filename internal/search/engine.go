package search

import (
	"sort"
	"strings"

	"github.com/pders01/spotlight/internal/index"
)

const (
	perfectScore = 100
	tokenScore   = 1
)

// Match is a ranked entry. Scores are transient and only meaningful
// within one Rank call.
type Match struct {
	Entry index.Entry
	Score int
}

// candidate carries the precomputed lowercase fields of an entry
// through the narrowing passes.
type candidate struct {
	entry      index.Entry
	name       string
	token      string
	wordsCount int
	score      int
}

// Rank filters entries by every query word in turn and orders the
// survivors by score.
//
// Each word narrows the survivors of the previous word. The score is
// overwritten on every pass, so the final order reflects the match
// quality of the last word only.
func Rank(q Query, entries []index.Entry) []Match {
	if q.Empty() || len(entries) == 0 {
		return []Match{}
	}

	// The phrase keeps the query's case while names are lowercased, so
	// a query with capitals never gets the phrase bonus.
	phrase := q.Text
	cands := make([]*candidate, 0, len(entries))
	for _, e := range entries {
		name := strings.ToLower(e.Name)
		cands = append(cands, &candidate{
			entry:      e,
			name:       name,
			token:      strings.ToLower(e.Token),
			wordsCount: len(strings.Fields(name)),
		})
	}

	for i, word := range q.Words {
		wordsSoFar := i + 1
		pattern := strings.ToLower(word)
		survivors := cands[:0]
		for _, c := range cands {
			if wordsSoFar > c.wordsCount {
				continue
			}
			if pos := strings.Index(c.name, pattern); pos >= 0 {
				c.score = score(pos, c.wordsCount, c.name, phrase, wordsSoFar)
				survivors = append(survivors, c)
				continue
			}
			if c.token != "" && strings.Contains(c.token, pattern) {
				c.score = tokenScore
				survivors = append(survivors, c)
			}
		}
		cands = survivors
		if len(cands) == 0 {
			break
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})

	matches := make([]Match, 0, len(cands))
	for _, c := range cands {
		matches = append(matches, Match{Entry: c.entry, Score: c.score})
	}
	return matches
}

// score rates a word hit at pos inside name. A whole-phrase hit wins
// over the per-word position; otherwise later hits, more query words
// and longer names all cost points.
func score(pos, wordsCount int, name, phrase string, queryWords int) int {
	if pos == 0 && wordsCount == 1 {
		return perfectScore
	}
	if p := strings.Index(name, phrase); p >= 0 {
		return perfectScore - p
	}
	spaces := queryWords - 1
	return perfectScore - pos - spaces - wordsCount
}
