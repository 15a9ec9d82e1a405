// Package corpus holds the ordered question/answer records the responder answers from.
package corpus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
)

// ErrInvalidRecord is returned when a record has an empty question or answer.
var ErrInvalidRecord = errors.New("corpus: record needs a non-empty question and answer")

// Corpus is an immutable, ordered sequence of records. Append returns a new Corpus,
// so a *Corpus handed to a reader never changes underneath it.
type Corpus struct {
	records []models.Record
}

// New validates records and returns a corpus holding a copy of them.
func New(records []models.Record) (*Corpus, error) {
	for i, r := range records {
		if err := Validate(r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return &Corpus{records: append([]models.Record(nil), records...)}, nil
}

// Validate checks the record invariant: question and answer are non-empty after trimming.
func Validate(r models.Record) error {
	if strings.TrimSpace(r.Question) == "" || strings.TrimSpace(r.Answer) == "" {
		return ErrInvalidRecord
	}
	return nil
}

// Append returns a new corpus with r added at the end.
func (c *Corpus) Append(r models.Record) (*Corpus, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	records := make([]models.Record, len(c.records), len(c.records)+1)
	copy(records, c.records)
	return &Corpus{records: append(records, r)}, nil
}

// Len returns the number of records.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// At returns the record at position i.
func (c *Corpus) At(i int) (models.Record, bool) {
	if c == nil || i < 0 || i >= len(c.records) {
		return models.Record{}, false
	}
	return c.records[i], true
}

// Records returns a copy of all records in order.
func (c *Corpus) Records() []models.Record {
	if c == nil {
		return nil
	}
	return append([]models.Record(nil), c.records...)
}

// Questions returns the questions in order, aligned with record positions.
func (c *Corpus) Questions() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.Question
	}
	return out
}

// Categories returns the distinct non-empty categories in order of first appearance.
func (c *Corpus) Categories() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, r := range c.records {
		if r.Category == "" {
			continue
		}
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}
