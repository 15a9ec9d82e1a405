package vector

import (
	"regexp"

	"github.com/blevesearch/bleve/v2/analysis/token/length"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	regexptok "github.com/blevesearch/bleve/v2/analysis/tokenizer/regexp"
	"golang.org/x/text/unicode/norm"
)

// minTermRunes drops single-character words such as "a" and "i".
const minTermRunes = 2

// wordPattern matches maximal runs of word characters. Apostrophes and dots
// split words, so "who's" yields "who" and "s", and "3.14" yields "3" and "14".
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Analyzer turns text into index terms: NFKC-normalized, split into runs of
// letters, digits and underscores, lower-cased, at least two runes long.
type Analyzer struct {
	tokenizer *regexptok.RegexpTokenizer
	lower     *lowercase.LowerCaseFilter
	length    *length.LengthFilter
}

// NewAnalyzer returns the analyzer used for both questions and queries.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		tokenizer: regexptok.NewRegexpTokenizer(wordPattern),
		lower:     lowercase.NewLowerCaseFilter(),
		length:    length.NewLengthFilter(minTermRunes, 0),
	}
}

// Terms returns the terms of text in order of appearance, duplicates included.
func (a *Analyzer) Terms(text string) []string {
	if text == "" {
		return nil
	}
	stream := a.tokenizer.Tokenize([]byte(norm.NFKC.String(text)))
	stream = a.lower.Filter(stream)
	stream = a.length.Filter(stream)
	terms := make([]string, 0, len(stream))
	for _, tok := range stream {
		terms = append(terms, string(tok.Term))
	}
	return terms
}
