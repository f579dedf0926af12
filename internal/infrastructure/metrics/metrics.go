// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var AdmissionDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "modgate_admission_decisions_total",
	Help: "Number of rate limiter admission decisions, by outcome (allowed, denied, degraded)",
}, []string{"outcome"})

var Verdicts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "modgate_verdicts_total",
	Help: "Number of moderation verdicts, by content kind and outcome (approved, rejected)",
}, []string{"kind", "outcome"})

var CategoryViolations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "modgate_category_violations_total",
	Help: "Number of category violations found, by content kind and category",
}, []string{"kind", "category"})

var PipelineErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "modgate_pipeline_errors_total",
	Help: "Number of moderation requests that ended in an error, by stage and error type",
}, []string{"stage", "type"})

var ScoringDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "modgate_scoring_duration_sec",
	Help:    "Duration of category scorer calls",
	Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
}, []string{"scorer", "kind"})

var ScoringCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "modgate_scoring_calls_total",
	Help: "Number of category scorer calls, by scorer, content kind and outcome (ok, error, timeout)",
}, []string{"scorer", "kind", "outcome"})

var ScoreCacheHits = promauto.NewCounter(prometheus.CounterOpts{
	Name: "modgate_score_cache_hits_total",
	Help: "Number of score cache hits",
})

var ScoreCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
	Name: "modgate_score_cache_misses_total",
	Help: "Number of score cache misses",
})

var ScoreRequestsCoalesced = promauto.NewCounter(prometheus.CounterOpts{
	Name: "modgate_score_requests_coalesced_total",
	Help: "Number of scoring calls that shared an in-flight call for identical content",
})

var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "modgate_http_request_duration_sec",
	Help:    "Duration of HTTP requests, by method, route and status code",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route", "status"})
