package load

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mTriplesLoaded = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ontoeval_load_triples",
		Help:    "Number of distinct triples in a loaded document.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})
	mTempFiles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ontoeval_load_temp_files",
		Help: "Number of temporary files currently held for in-memory documents.",
	})
	mCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ontoeval_load_cache_lookups_total",
		Help: "Number of parsed-content cache lookups by result.",
	}, []string{"result"})
)
