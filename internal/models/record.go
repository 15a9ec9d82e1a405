// Package models defines core data structures for corpus records, matches, and replies.
package models

import "time"

// Record is one stored question/answer pair. Identity is its position in the corpus.
type Record struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// RecordInput is the input for appending a record to the corpus.
type RecordInput struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Category string `json:"category,omitempty"`
}

// Record converts the input to a Record. Fields are used as given; callers trim first.
func (in *RecordInput) Record() Record {
	return Record{Question: in.Question, Answer: in.Answer, Category: in.Category}
}

// MatchResult is the nearest stored question for a query under cosine similarity.
type MatchResult struct {
	RecordIndex int     `json:"record_index"`
	Score       float64 `json:"score"`
}

// Status summarizes the live corpus and index.
type Status struct {
	Records        int       `json:"records"`
	Categories     int       `json:"categories"`
	CategoryNames  []string  `json:"category_names"`
	VocabularySize int       `json:"vocabulary_size"`
	IndexSize      int       `json:"index_size"`
	IndexAvailable bool      `json:"index_available"`
	Generation     uint64    `json:"generation"`
	BuiltAt        time.Time `json:"built_at"`
	Seeded         bool      `json:"seeded"`
	Backend        string    `json:"backend"`
	DiskUsageBytes *int64    `json:"disk_usage_bytes,omitempty"`
	MatchThreshold float64   `json:"match_threshold"`
}
