// Package search provides question matching and autocomplete suggestions over the corpus.
package search

import (
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/vector"
)

// Match returns the record whose question is most similar to query under cosine
// similarity. Ties go to the lowest record index. It reports false when idx is nil
// or empty, when the query shares no term with the vocabulary, or when scoring fails.
func Match(query string, idx *vector.Index) (result models.MatchResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			result, ok = models.MatchResult{RecordIndex: -1}, false
		}
	}()
	miss := models.MatchResult{RecordIndex: -1}
	if idx.Size() == 0 {
		return miss, false
	}
	q := idx.Transform(query)
	if q.IsZero() {
		return miss, false
	}
	best, bestScore := -1, -1.0
	for i := 0; i < idx.Size(); i++ {
		// strict comparison keeps the first of equal scores
		if s := vector.Cosine(q, idx.Vector(i)); s > bestScore {
			best, bestScore = i, s
		}
	}
	return models.MatchResult{RecordIndex: best, Score: bestScore}, true
}
