// Package responder chooses a reply for a query: a confident corpus match first,
// then keyword fallbacks, then a generic reply.
package responder

import (
	"math/rand"
	"strings"
	"time"

	"github.com/hyperjump/kotae/internal/corpus"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/search"
	"github.com/hyperjump/kotae/internal/vector"
	"github.com/hyperjump/kotae/pkg/utils"
)

// DefaultMatchThreshold is the similarity a match must exceed to be answered from the corpus.
const DefaultMatchThreshold = 0.3

// Rand picks uniformly from [0, n). Implementations must be safe for concurrent use
// when the Responder is shared.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.Intn(n) }

// Responder runs the response chain. It holds no corpus state; callers pass the
// corpus and index snapshot on every call.
type Responder struct {
	threshold float64
	rules     []Rule
	defaults  []string
	clock     func() time.Time
	rand      Rand
}

// Option configures a Responder.
type Option func(*Responder)

// WithThreshold overrides DefaultMatchThreshold.
func WithThreshold(t float64) Option {
	return func(r *Responder) { r.threshold = t }
}

// WithClock sets the time source for the time and date rules.
func WithClock(clock func() time.Time) Option {
	return func(r *Responder) { r.clock = clock }
}

// WithRand sets the random source for the greeting and default pools.
func WithRand(rnd Rand) Option {
	return func(r *Responder) { r.rand = rnd }
}

// WithRules replaces the fallback chain.
func WithRules(rules []Rule) Option {
	return func(r *Responder) { r.rules = rules }
}

// New returns a Responder with the default threshold, rules, system clock and
// the unseeded global random generator.
func New(opts ...Option) *Responder {
	r := &Responder{
		threshold: DefaultMatchThreshold,
		rules:     DefaultRules(),
		defaults:  defaultReplies,
		clock:     time.Now,
		rand:      globalRand{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Threshold returns the match acceptance threshold.
func (r *Responder) Threshold() float64 {
	return r.threshold
}

// Respond returns the reply for query. It always returns a non-empty text.
func (r *Responder) Respond(query string, c *corpus.Corpus, idx *vector.Index) models.Reply {
	if res, ok := search.Match(query, idx); ok && res.Score > r.threshold {
		// a stale index may point past the corpus; treat as a miss
		if rec, found := c.At(res.RecordIndex); found {
			return models.Reply{
				Text:        rec.Answer,
				Stage:       models.StageMatch,
				RecordIndex: res.RecordIndex,
				Score:       res.Score,
			}
		}
	}
	return r.Fallback(query)
}

// Fallback runs the keyword rules and the default pool, skipping the corpus match.
func (r *Responder) Fallback(query string) models.Reply {
	lower := strings.ToLower(query)
	env := Env{Now: r.clock(), Rand: r.rand}
	for _, rule := range r.rules {
		if utils.ContainsAny(lower, rule.Keywords) {
			return models.Reply{Text: rule.Reply(env), Stage: rule.Stage, RecordIndex: -1}
		}
	}
	return models.Reply{Text: pick(r.rand, r.defaults), Stage: models.StageDefault, RecordIndex: -1}
}
