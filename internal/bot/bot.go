// Package bot owns the live corpus and index and serves responses from them.
//
// Readers take the current Snapshot without locking. Append and Reload are
// serialized, and each publishes a fully rebuilt snapshot before returning,
// so a reply requested after a successful Append already sees the new record.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/corpus"
	"github.com/hyperjump/kotae/internal/metrics"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/responder"
	"github.com/hyperjump/kotae/internal/search"
	"github.com/hyperjump/kotae/internal/storage"
	"github.com/hyperjump/kotae/internal/vector"
	"github.com/hyperjump/kotae/pkg/utils"
)

// Snapshot is an immutable view of the corpus and the index built from it.
// Index is nil when the build failed; every match then misses.
type Snapshot struct {
	Corpus     *corpus.Corpus
	Index      *vector.Index
	Generation uint64
	BuiltAt    time.Time
	// Seeded is true while the corpus is the built-in seed rather than stored records.
	Seeded bool
}

// Bot answers queries against the latest published Snapshot.
type Bot struct {
	store       storage.Storage
	responder   *responder.Responder
	logger      *zap.Logger
	metrics     *metrics.Metrics
	suggestOpts []search.SuggestOption
	validate    *validator.Validate

	mu   sync.Mutex
	snap atomic.Pointer[Snapshot]
}

// Option configures a Bot.
type Option func(*Bot)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bot) { b.logger = l }
}

// WithMetrics sets the collectors replies and rebuilds are recorded on.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Bot) { b.metrics = m }
}

// WithSuggestOptions sets the options passed to every suggestion lookup.
func WithSuggestOptions(opts ...search.SuggestOption) Option {
	return func(b *Bot) { b.suggestOpts = opts }
}

// New loads the corpus from store, falling back to the seed corpus when the store
// is empty or unreadable, and publishes the first snapshot. A nil responder gets
// the defaults.
func New(ctx context.Context, store storage.Storage, r *responder.Responder, opts ...Option) (*Bot, error) {
	if store == nil {
		return nil, errors.New("bot: storage is required")
	}
	if r == nil {
		r = responder.New()
	}
	b := &Bot{
		store:     store,
		responder: r,
		validate:  validator.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = utils.OrNop(b.logger)

	b.mu.Lock()
	defer b.mu.Unlock()
	c, seeded, err := b.load(ctx)
	if err != nil {
		b.logger.Warn("corpus unavailable, using seed corpus", zap.String("backend", store.Name()), zap.Error(err))
		c, seeded = corpus.Seed(), true
	}
	b.publish(c, seeded)
	return b, nil
}

// load reads the stored corpus. An empty store yields the seed corpus.
func (b *Bot) load(ctx context.Context) (*corpus.Corpus, bool, error) {
	records, err := b.store.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(records) == 0 {
		b.logger.Info("stored corpus is empty, using seed corpus", zap.String("backend", b.store.Name()))
		return corpus.Seed(), true, nil
	}
	c, err := corpus.New(records)
	if err != nil {
		return nil, false, err
	}
	return c, false, nil
}

// publish builds the index for c and swaps in the new snapshot. Callers hold mu.
func (b *Bot) publish(c *corpus.Corpus, seeded bool) *Snapshot {
	start := time.Now()
	idx, err := vector.Build(c.Questions())
	if err != nil {
		b.logger.Warn("index build failed, matching disabled", zap.Int("records", c.Len()), zap.Error(err))
		idx = nil
	}
	b.metrics.IndexBuilt(c.Len(), err == nil)

	var gen uint64 = 1
	if prev := b.snap.Load(); prev != nil {
		gen = prev.Generation + 1
	}
	s := &Snapshot{Corpus: c, Index: idx, Generation: gen, BuiltAt: time.Now(), Seeded: seeded}
	b.snap.Store(s)

	b.logger.Debug("snapshot published",
		zap.Uint64("generation", gen),
		zap.Int("records", c.Len()),
		zap.Int("vocabulary", idx.VocabularySize()),
		zap.Bool("seeded", seeded),
		zap.Duration("took", time.Since(start)),
	)
	return s
}

// Snapshot returns the current snapshot.
func (b *Bot) Snapshot() *Snapshot {
	return b.snap.Load()
}

// Respond returns the reply for query tagged with a fresh turn ID.
func (b *Bot) Respond(query string) models.Response {
	s := b.Snapshot()
	reply := b.responder.Respond(query, s.Corpus, s.Index)
	b.metrics.ObserveReply(reply)
	b.logger.Debug("respond",
		zap.String("stage", string(reply.Stage)),
		zap.Int("record_index", reply.RecordIndex),
		zap.Float64("score", reply.Score),
	)
	return models.Response{TurnID: uuid.NewString(), Query: query, Reply: reply}
}

// Match returns the nearest stored question for query regardless of threshold.
func (b *Bot) Match(query string) (models.MatchResult, bool) {
	return search.Match(query, b.Snapshot().Index)
}

// Suggest returns stored questions containing partial.
func (b *Bot) Suggest(partial string) []string {
	return search.Suggest(partial, b.Snapshot().Corpus.Questions(), b.suggestOpts...)
}

// Records returns the live corpus in order.
func (b *Bot) Records() []models.Record {
	return b.Snapshot().Corpus.Records()
}

// Append validates and persists a record, then publishes a rebuilt snapshot.
// It returns the new record's position. Validation failures wrap
// corpus.ErrInvalidRecord; on any error the snapshot is unchanged.
func (b *Bot) Append(ctx context.Context, in models.RecordInput) (int, error) {
	rec, err := b.prepare(in)
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	cur := b.snap.Load()
	next, err := cur.Corpus.Append(rec)
	if err != nil {
		return 0, err
	}

	// the seed only lives in memory; write it out with the first real record
	if cur.Seeded {
		err = b.store.Save(ctx, next.Records())
	} else {
		err = b.store.Append(ctx, rec)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to persist record: %w", err)
	}

	b.publish(next, false)
	position := next.Len() - 1
	b.logger.Info("record added", zap.Int("position", position), zap.String("category", rec.Category))
	return position, nil
}

// Rejection is an input AppendAll refused, with its position in the batch.
type Rejection struct {
	Index int
	Input models.RecordInput
	Err   error
}

// AppendAll appends every valid input in order, persisting and rebuilding the
// index once for the whole batch. Invalid inputs are skipped and reported; they
// do not fail the batch. A persistence failure leaves the snapshot unchanged and
// nothing is added.
func (b *Bot) AppendAll(ctx context.Context, inputs []models.RecordInput) (int, []Rejection, error) {
	var (
		valid    []models.Record
		rejected []Rejection
	)
	for i, in := range inputs {
		rec, err := b.prepare(in)
		if err != nil {
			rejected = append(rejected, Rejection{Index: i, Input: in, Err: err})
			continue
		}
		valid = append(valid, rec)
	}
	if len(valid) == 0 {
		return 0, rejected, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	cur := b.snap.Load()
	next, err := corpus.New(append(cur.Corpus.Records(), valid...))
	if err != nil {
		return 0, rejected, err
	}
	if err := b.store.Save(ctx, next.Records()); err != nil {
		return 0, rejected, fmt.Errorf("failed to persist records: %w", err)
	}

	s := b.publish(next, false)
	b.logger.Info("records added",
		zap.Int("added", len(valid)),
		zap.Int("rejected", len(rejected)),
		zap.Uint64("generation", s.Generation))
	return len(valid), rejected, nil
}

// prepare validates in and returns it as a trimmed record.
func (b *Bot) prepare(in models.RecordInput) (models.Record, error) {
	if err := b.validate.Struct(&in); err != nil {
		return models.Record{}, fmt.Errorf("%w: %v", corpus.ErrInvalidRecord, err)
	}
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	in.Category = strings.TrimSpace(in.Category)
	rec := in.Record()
	if err := corpus.Validate(rec); err != nil {
		return models.Record{}, err
	}
	return rec, nil
}

// Reload re-reads the store and publishes a rebuilt snapshot. An empty store
// falls back to the seed corpus. When the store cannot be read, the current
// snapshot is kept and the error returned.
func (b *Bot) Reload(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, seeded, err := b.load(ctx)
	if err != nil {
		b.logger.Warn("reload failed, keeping current corpus", zap.Error(err))
		return fmt.Errorf("failed to reload corpus: %w", err)
	}
	s := b.publish(c, seeded)
	b.logger.Info("corpus reloaded", zap.Int("records", c.Len()), zap.Uint64("generation", s.Generation))
	return nil
}

// Status summarizes the current snapshot and the store behind it.
func (b *Bot) Status(ctx context.Context) models.Status {
	s := b.Snapshot()
	cats := s.Corpus.Categories()
	if cats == nil {
		cats = []string{}
	}
	st := models.Status{
		Records:        s.Corpus.Len(),
		Categories:     len(cats),
		CategoryNames:  cats,
		VocabularySize: s.Index.VocabularySize(),
		IndexSize:      s.Index.Size(),
		IndexAvailable: s.Index != nil,
		Generation:     s.Generation,
		BuiltAt:        s.BuiltAt,
		Seeded:         s.Seeded,
		Backend:        b.store.Name(),
		MatchThreshold: b.responder.Threshold(),
	}
	if n, err := storage.UsageOf(b.store); err == nil {
		st.DiskUsageBytes = &n
	} else {
		b.logger.Debug("disk usage unavailable", zap.Error(err))
	}
	return st
}
