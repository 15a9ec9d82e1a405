package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/hyperjump/kotae/internal/models"
)

func TestObserveReply(t *testing.T) {
	m := New()
	m.ObserveReply(models.Reply{Stage: models.StageMatch, Score: 0.9, RecordIndex: 2})
	m.ObserveReply(models.Reply{Stage: models.StageGreeting, RecordIndex: -1})
	m.ObserveReply(models.Reply{Stage: models.StageGreeting, RecordIndex: -1})

	if got := testutil.ToFloat64(m.responses.WithLabelValues("greeting")); got != 2 {
		t.Errorf("greeting responses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.responses.WithLabelValues("match")); got != 1 {
		t.Errorf("match responses = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.matchScore); got != 1 {
		t.Errorf("match score series = %d, want 1", got)
	}
}

func TestIndexBuilt(t *testing.T) {
	m := New()
	m.IndexBuilt(20, true)
	m.IndexBuilt(21, true)
	m.IndexBuilt(0, false)

	if got := testutil.ToFloat64(m.indexBuilds); got != 2 {
		t.Errorf("builds = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.indexBuildFailures); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.corpusRecords); got != 0 {
		t.Errorf("records gauge = %v, want 0", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveReply(models.Reply{Stage: models.StageDefault})
	m.IndexBuilt(1, true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveReply(models.Reply{Stage: models.StageFarewell, RecordIndex: -1})
	m.IndexBuilt(3, true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`kotae_responses_total{stage="farewell"} 1`,
		"kotae_corpus_records 3",
		"kotae_index_builds_total 1",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}
