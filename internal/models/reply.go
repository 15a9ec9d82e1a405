package models

import "fmt"

// Stage names the step of the response chain that produced a reply.
type Stage string

const (
	StageMatch     Stage = "match"
	StageGreeting  Stage = "greeting"
	StageTime      Stage = "time"
	StageDate      Stage = "date"
	StageGratitude Stage = "gratitude"
	StageFarewell  Stage = "farewell"
	StageDefault   Stage = "default"
)

// Reply is the outcome of one response turn.
// RecordIndex is -1 and Score is 0 unless Stage is StageMatch.
type Reply struct {
	Text        string  `json:"text"`
	Stage       Stage   `json:"stage"`
	RecordIndex int     `json:"record_index"`
	Score       float64 `json:"score"`
}

// Response is a Reply tagged with the turn that produced it.
type Response struct {
	TurnID string `json:"turn_id"`
	Query  string `json:"query"`
	Reply
}

// RespondRequest is the body of a respond request.
type RespondRequest struct {
	Query string `json:"query"`
}

// Validate returns an error if the query is empty.
func (r *RespondRequest) Validate() error {
	if r.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	return nil
}

// SuggestResponse is the response for a suggestion request.
type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// RecordsResponse lists the corpus in order.
type RecordsResponse struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}
