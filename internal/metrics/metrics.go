package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "joeblog_generations_total",
		Help: "Generate submissions by outcome (ok or the failure reason).",
	}, []string{"outcome"})

	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "joeblog_generation_duration_seconds",
		Help:    "Time spent waiting on the generation provider.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	}, []string{"provider"})

	DownloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "joeblog_downloads_total",
		Help: "Generated articles downloaded as text files.",
	})

	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "joeblog_api_requests_total",
		Help: "JSON API generate requests by response code.",
	}, []string{"code"})
)
