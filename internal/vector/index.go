// Package vector provides the TF-IDF index over corpus questions and sparse similarity.
package vector

import (
	"errors"
	"math"
	"sort"

	"github.com/hyperjump/kotae/pkg/utils"
)

var (
	// ErrEmptyCorpus is returned by Build when there are no questions.
	ErrEmptyCorpus = errors.New("vector: no questions to index")
	// ErrEmptyVocabulary is returned by Build when no question yields a term.
	ErrEmptyVocabulary = errors.New("vector: empty vocabulary")
)

// Index is a fitted TF-IDF vocabulary plus one unit-length vector per question,
// aligned by position. An Index is immutable once built.
type Index struct {
	analyzer *Analyzer
	vocab    map[string]int
	terms    []string
	idf      []float64
	docs     []SparseVector
}

// Build fits a vocabulary over questions, each question being one document, and
// weights every question with smoothed idf: ln((1+n)/(1+df)) + 1.
func Build(questions []string) (*Index, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyCorpus
	}
	analyzer := NewAnalyzer()

	tokenized := make([][]string, len(questions))
	df := make(map[string]int)
	for i, q := range questions {
		terms := analyzer.Terms(q)
		tokenized[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	n := float64(len(questions))
	ix := &Index{
		analyzer: analyzer,
		vocab:    make(map[string]int, len(terms)),
		terms:    terms,
		idf:      make([]float64, len(terms)),
		docs:     make([]SparseVector, len(questions)),
	}
	for dim, t := range terms {
		ix.vocab[t] = dim
		ix.idf[dim] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	for i, toks := range tokenized {
		ix.docs[i] = ix.weigh(toks)
	}
	return ix, nil
}

// Transform vectorizes text with the fitted vocabulary. Unknown terms are ignored;
// the result is unit length, or zero when nothing overlaps.
func (ix *Index) Transform(text string) SparseVector {
	return ix.weigh(ix.analyzer.Terms(text))
}

func (ix *Index) weigh(terms []string) SparseVector {
	counts := make(map[int]int, len(terms))
	for _, t := range terms {
		if dim, ok := ix.vocab[t]; ok {
			counts[dim]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}
	dims := make([]int, 0, len(counts))
	for dim := range counts {
		dims = append(dims, dim)
	}
	sort.Ints(dims)
	weights := make([]float64, len(dims))
	for i, dim := range dims {
		weights[i] = float64(counts[dim]) * ix.idf[dim]
	}
	utils.NormalizeL2(weights)
	return SparseVector{Dims: dims, Weights: weights}
}

// Size returns the number of indexed questions.
func (ix *Index) Size() int {
	if ix == nil {
		return 0
	}
	return len(ix.docs)
}

// VocabularySize returns the number of distinct terms.
func (ix *Index) VocabularySize() int {
	if ix == nil {
		return 0
	}
	return len(ix.terms)
}

// Vector returns the weight vector of question i.
func (ix *Index) Vector(i int) SparseVector {
	return ix.docs[i]
}

// Terms returns the vocabulary in dimension order.
func (ix *Index) Terms() []string {
	return append([]string(nil), ix.terms...)
}

// IDF returns the inverse document frequency of term and whether it is in the vocabulary.
func (ix *Index) IDF(term string) (float64, bool) {
	dim, ok := ix.vocab[term]
	if !ok {
		return 0, false
	}
	return ix.idf[dim], true
}
