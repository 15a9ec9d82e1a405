package responder

import (
	"time"

	"github.com/hyperjump/kotae/internal/models"
)

// Env is what a rule may read when building its reply.
type Env struct {
	Now  time.Time
	Rand Rand
}

// Rule is one keyword-triggered fallback. A rule fires when the lower-cased query
// contains any of its keywords as a substring.
type Rule struct {
	Stage    models.Stage
	Keywords []string
	Reply    func(env Env) string
}

var greetingReplies = []string{
	"Hello! How can I help you today?",
	"Hi there! What would you like to know?",
	"Hey! How can I assist you?",
}

var defaultReplies = []string{
	"That's an interesting question! I'm still learning, but I'll try to help.",
	"I understand you're asking about that. Could you try rephrasing your question?",
	"I'm not sure I have the answer to that in my dataset yet.",
	"That's a great question! My knowledge is based on my training data.",
	"I'm constantly learning. Could you ask me something else?",
}

const (
	gratitudeReply = "You're welcome! Is there anything else I can help with?"
	farewellReply  = "Goodbye! Feel free to chat again anytime!"

	timeLayout = "15:04:05"
	dateLayout = "Monday, January 02, 2006"
)

// GreetingReplies returns the pool the greeting rule picks from.
func GreetingReplies() []string { return append([]string(nil), greetingReplies...) }

// DefaultReplies returns the pool used when nothing else applies.
func DefaultReplies() []string { return append([]string(nil), defaultReplies...) }

// GratitudeReply is the fixed acknowledgment.
func GratitudeReply() string { return gratitudeReply }

// FarewellReply is the fixed farewell.
func FarewellReply() string { return farewellReply }

// DefaultRules returns the fallback chain in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Stage:    models.StageGreeting,
			Keywords: []string{"hello", "hi", "hey", "hola"},
			Reply:    func(env Env) string { return pick(env.Rand, greetingReplies) },
		},
		{
			Stage:    models.StageTime,
			Keywords: []string{"time", "clock", "hour"},
			Reply:    func(env Env) string { return "The current time is " + env.Now.Format(timeLayout) },
		},
		{
			Stage:    models.StageDate,
			Keywords: []string{"date", "day", "today"},
			Reply:    func(env Env) string { return "Today is " + env.Now.Format(dateLayout) },
		},
		{
			Stage:    models.StageGratitude,
			Keywords: []string{"thank", "thanks"},
			Reply:    func(Env) string { return gratitudeReply },
		},
		{
			Stage:    models.StageFarewell,
			Keywords: []string{"bye", "goodbye", "exit", "quit"},
			Reply:    func(Env) string { return farewellReply },
		},
	}
}

func pick(r Rand, pool []string) string {
	return pool[r.IntN(len(pool))]
}
