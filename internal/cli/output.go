// Package cli implements the kotae command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, "":
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q; use text or json", s)
}

// BuildQuery joins positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func BuildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteResponse writes one reply to w in the given format.
func WriteResponse(w io.Writer, resp *models.Response, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	fmt.Fprintln(w, resp.Text)
	if resp.Stage == models.StageMatch {
		fmt.Fprintf(w, "  [match #%d, score %.4f]\n", resp.RecordIndex, resp.Score)
	} else {
		fmt.Fprintf(w, "  [%s]\n", resp.Stage)
	}
	return nil
}

// WriteSuggestions writes suggestions to w, one per line in text format.
func WriteSuggestions(w io.Writer, resp *models.SuggestResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	for _, s := range resp.Suggestions {
		fmt.Fprintf(w, "- %s\n", s)
	}
	return nil
}

// WriteRecords lists records with their positions.
func WriteRecords(w io.Writer, resp *models.RecordsResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	for i, r := range resp.Records {
		cat := r.Category
		if cat == "" {
			cat = "-"
		}
		fmt.Fprintf(w, "%4d  [%s] %s\n      %s\n", i, cat, r.Question, utils.Truncate(r.Answer, 100))
	}
	fmt.Fprintf(w, "\n%d records\n", resp.Total)
	return nil
}

// WriteStatus writes corpus and index status to w.
func WriteStatus(w io.Writer, st *models.Status, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, st)
	}
	fmt.Fprintf(w, "records:            %d   # question/answer pairs in the corpus\n", st.Records)
	fmt.Fprintf(w, "categories:         %d\n", st.Categories)
	if len(st.CategoryNames) > 0 {
		fmt.Fprintf(w, "category_names:     %s\n", strings.Join(st.CategoryNames, ", "))
	}
	fmt.Fprintf(w, "vocabulary_size:    %d   # distinct terms in the index\n", st.VocabularySize)
	fmt.Fprintf(w, "index_size:         %d\n", st.IndexSize)
	fmt.Fprintf(w, "index_available:    %t\n", st.IndexAvailable)
	fmt.Fprintf(w, "generation:         %d\n", st.Generation)
	fmt.Fprintf(w, "seeded:             %t   # true while serving the built-in sample corpus\n", st.Seeded)
	fmt.Fprintf(w, "match_threshold:    %.2f\n", st.MatchThreshold)
	fmt.Fprintf(w, "backend:            %s\n", st.Backend)
	if st.DiskUsageBytes != nil {
		fmt.Fprintf(w, "disk_usage_bytes:   %d\n", *st.DiskUsageBytes)
	}
	return nil
}
