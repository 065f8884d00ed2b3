package eval

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ontoeval_evaluations_total",
		Help: "Number of ontology evaluations by scoring mode and outcome.",
	}, []string{"mode", "result"})
	mParseErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ontoeval_parse_errors_total",
		Help: "Number of documents that failed to parse, by side.",
	}, []string{"side"})
	mEvalSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "ontoeval_evaluation_seconds",
		Help: "Time to load and score both ontologies.",
	})
	mCorrectness = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ontoeval_correctness",
		Help:    "Correctness ratio of successful evaluations.",
		Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
	}, []string{"mode"})
)
