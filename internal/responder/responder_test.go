package responder

import (
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/kotae/internal/corpus"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/search"
	"github.com/hyperjump/kotae/internal/vector"
)

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

var fixedNow = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func newTestResponder(opts ...Option) *Responder {
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithRand(fixedRand(2)),
	}
	return New(append(base, opts...)...)
}

func buildFixture(t *testing.T, records ...models.Record) (*corpus.Corpus, *vector.Index) {
	t.Helper()
	c, err := corpus.New(records)
	if err != nil {
		t.Fatalf("corpus.New: %v", err)
	}
	idx, err := vector.Build(c.Questions())
	if err != nil {
		t.Fatalf("vector.Build: %v", err)
	}
	return c, idx
}

func TestRespond_Match(t *testing.T) {
	c, idx := buildFixture(t, models.Record{Question: "hello", Answer: "Hi there!", Category: "greeting"})
	r := newTestResponder()

	got := r.Respond("hello", c, idx)
	if got.Stage != models.StageMatch {
		t.Fatalf("stage = %s, want match", got.Stage)
	}
	if got.Text != "Hi there!" {
		t.Errorf("text = %q, want %q", got.Text, "Hi there!")
	}
	if got.RecordIndex != 0 {
		t.Errorf("record index = %d, want 0", got.RecordIndex)
	}
	if got.Score <= DefaultMatchThreshold {
		t.Errorf("score = %v, want > %v", got.Score, DefaultMatchThreshold)
	}
}

func TestRespond_Fallbacks(t *testing.T) {
	r := newTestResponder()
	var (
		c   *corpus.Corpus
		idx *vector.Index
	)

	tests := []struct {
		name  string
		query string
		stage models.Stage
		text  string
	}{
		{"greeting", "Hey you", models.StageGreeting, GreetingReplies()[2]},
		{"greeting wins over farewell", "hi, goodbye", models.StageGreeting, GreetingReplies()[2]},
		{"time", "what TIME is it", models.StageTime, "The current time is 14:07:09"},
		{"date", "what day is it", models.StageDate, "Today is Tuesday, March 05, 2024"},
		{"gratitude", "thanks a lot", models.StageGratitude, GratitudeReply()},
		{"farewell", "bye", models.StageFarewell, FarewellReply()},
		{"default", "xyzzy plugh", models.StageDefault, DefaultReplies()[2]},
		{"empty query", "", models.StageDefault, DefaultReplies()[2]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Respond(tt.query, c, idx)
			if got.Stage != tt.stage {
				t.Fatalf("stage = %s, want %s", got.Stage, tt.stage)
			}
			if got.Text != tt.text {
				t.Errorf("text = %q, want %q", got.Text, tt.text)
			}
			if got.RecordIndex != -1 || got.Score != 0 {
				t.Errorf("non-match reply carries index %d score %v", got.RecordIndex, got.Score)
			}
		})
	}
}

func TestRespond_ScoreAtThresholdIsRejected(t *testing.T) {
	c, idx := buildFixture(t,
		models.Record{Question: "make strong coffee", Answer: "Grind finer."},
		models.Record{Question: "brew green tea", Answer: "Use cooler water."},
	)
	res, ok := search.Match("coffee please", idx)
	if !ok {
		t.Fatal("expected a match result")
	}

	r := newTestResponder(WithThreshold(res.Score))
	got := r.Respond("coffee please", c, idx)
	if got.Stage == models.StageMatch {
		t.Fatalf("score %v equal to threshold was accepted", res.Score)
	}

	r = newTestResponder(WithThreshold(res.Score - 0.01))
	got = r.Respond("coffee please", c, idx)
	if got.Stage != models.StageMatch || got.Text != "Grind finer." {
		t.Fatalf("got %+v, want match on record 0", got)
	}
}

func TestRespond_LowScoreFallsThrough(t *testing.T) {
	c, idx := buildFixture(t, models.Record{Question: "hello", Answer: "Hi there!"})
	r := newTestResponder(WithThreshold(1.5))

	got := r.Respond("hello", c, idx)
	if got.Stage != models.StageGreeting {
		t.Fatalf("stage = %s, want greeting", got.Stage)
	}
	if got.Text == "Hi there!" {
		t.Error("low-confidence match answered from corpus")
	}
}

func TestRespond_StaleIndexIsMiss(t *testing.T) {
	_, idx := buildFixture(t,
		models.Record{Question: "alpha", Answer: "a"},
		models.Record{Question: "bravo", Answer: "b"},
	)
	c, err := corpus.New([]models.Record{{Question: "alpha", Answer: "a"}})
	if err != nil {
		t.Fatal(err)
	}

	got := newTestResponder().Respond("bravo", c, idx)
	if got.Stage != models.StageDefault {
		t.Fatalf("stage = %s, want default", got.Stage)
	}
}

func TestRespond_NonEmpty(t *testing.T) {
	c := corpus.Seed()
	idx, err := vector.Build(c.Questions())
	if err != nil {
		t.Fatal(err)
	}
	r := New()
	for _, q := range []string{"", "   ", "hello", "what is python", "qqq", "time", "ありがとう"} {
		got := r.Respond(q, c, idx)
		if strings.TrimSpace(got.Text) == "" {
			t.Errorf("Respond(%q) returned empty text", q)
		}
	}
}

func TestWithRules(t *testing.T) {
	rules := []Rule{{
		Stage:    models.StageFarewell,
		Keywords: []string{"ciao"},
		Reply:    func(Env) string { return "arrivederci" },
	}}
	r := newTestResponder(WithRules(rules))

	if got := r.Fallback("ciao"); got.Text != "arrivederci" {
		t.Errorf("custom rule: got %q", got.Text)
	}
	if got := r.Fallback("hello"); got.Stage != models.StageDefault {
		t.Errorf("replaced chain still greeted: %+v", got)
	}
}

func TestDefaultRulesOrder(t *testing.T) {
	want := []models.Stage{
		models.StageGreeting,
		models.StageTime,
		models.StageDate,
		models.StageGratitude,
		models.StageFarewell,
	}
	rules := DefaultRules()
	if len(rules) != len(want) {
		t.Fatalf("got %d rules, want %d", len(rules), len(want))
	}
	for i, rule := range rules {
		if rule.Stage != want[i] {
			t.Errorf("rule %d = %s, want %s", i, rule.Stage, want[i])
		}
	}
}

func TestReplyPools_AreCopies(t *testing.T) {
	pool := GreetingReplies()
	if len(pool) != 3 || len(DefaultReplies()) != 5 {
		t.Fatalf("pool sizes = %d, %d; want 3, 5", len(pool), len(DefaultReplies()))
	}
	pool[0] = "changed"
	if GreetingReplies()[0] == "changed" {
		t.Error("GreetingReplies must return an independent copy")
	}
}
