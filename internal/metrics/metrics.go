// Package metrics exposes Prometheus collectors for the responder on a private registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hyperjump/kotae/internal/models"
)

// Metrics holds the responder's collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	responses          *prometheus.CounterVec
	matchScore         prometheus.Histogram
	indexBuilds        prometheus.Counter
	indexBuildFailures prometheus.Counter
	corpusRecords      prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		responses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kotae_responses_total",
				Help: "Replies returned, by the chain stage that produced them",
			},
			[]string{"stage"},
		),
		matchScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kotae_match_score",
			Help:    "Cosine similarity of accepted corpus matches",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
		indexBuilds: factory.NewCounter(prometheus.CounterOpts{
			Name: "kotae_index_builds_total",
			Help: "Vector index rebuilds that succeeded",
		}),
		indexBuildFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "kotae_index_build_failures_total",
			Help: "Vector index rebuilds that failed and left no index",
		}),
		corpusRecords: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kotae_corpus_records",
			Help: "Records in the live corpus",
		}),
	}
}

// ObserveReply counts a reply and, for corpus matches, records its score.
func (m *Metrics) ObserveReply(r models.Reply) {
	if m == nil {
		return
	}
	m.responses.WithLabelValues(string(r.Stage)).Inc()
	if r.Stage == models.StageMatch {
		m.matchScore.Observe(r.Score)
	}
}

// IndexBuilt records a published snapshot and its corpus size.
func (m *Metrics) IndexBuilt(records int, ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.indexBuilds.Inc()
	} else {
		m.indexBuildFailures.Inc()
	}
	m.corpusRecords.Set(float64(records))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
