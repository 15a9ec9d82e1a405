package search

import "strings"

// DefaultSuggestionLimit is the maximum number of suggestions returned.
const DefaultSuggestionLimit = 3

// DefaultPlaceholders are returned when no question contains the partial input.
var DefaultPlaceholders = []string{"Ask me anything!", "Try a question", "Need help?"}

// SuggestOption configures Suggest.
type SuggestOption func(*suggestOptions)

type suggestOptions struct {
	limit        int
	placeholders []string
}

// WithLimit caps the number of suggestions. Values <= 0 keep the default.
func WithLimit(n int) SuggestOption {
	return func(o *suggestOptions) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithPlaceholders replaces the fallback list. An empty list keeps the default.
func WithPlaceholders(p []string) SuggestOption {
	return func(o *suggestOptions) {
		if len(p) > 0 {
			o.placeholders = p
		}
	}
}

// Suggest returns, in corpus order, up to limit questions that contain partial
// case-insensitively. When none qualify it returns the placeholder list, never an empty result.
func Suggest(partial string, questions []string, opts ...SuggestOption) []string {
	o := suggestOptions{limit: DefaultSuggestionLimit, placeholders: DefaultPlaceholders}
	for _, opt := range opts {
		opt(&o)
	}
	needle := strings.ToLower(partial)
	out := make([]string, 0, o.limit)
	for _, q := range questions {
		if strings.Contains(strings.ToLower(q), needle) {
			out = append(out, q)
			if len(out) == o.limit {
				break
			}
		}
	}
	if len(out) == 0 {
		return append([]string(nil), o.placeholders...)
	}
	return out
}
