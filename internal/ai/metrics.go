package ai

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "troubleshoot_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"model", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "troubleshoot_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"model"},
	)
	aiTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "troubleshoot_ai_tokens",
			Help:    "Histogram of token counts per request.",
			Buckets: prometheus.LinearBuckets(250, 250, 20),
		},
		[]string{"model", "kind"}, // kind: prompt, completion
	)
	generationResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "troubleshoot_generation_results_total",
			Help: "Content generation outcomes by content type.",
		},
		[]string{"content", "result"}, // result: ok, rejected, refused, error
	)
)

func observeRequest(model, status string, started time.Time) {
	aiRequestsTotal.WithLabelValues(model, status).Inc()
	if status == "success" {
		aiRequestDuration.WithLabelValues(model).Observe(time.Since(started).Seconds())
	}
}

func observeUsage(model string, usage UsageInfo) {
	if usage.TotalTokens == 0 {
		return
	}
	aiTokens.WithLabelValues(model, "prompt").Observe(float64(usage.PromptTokens))
	aiTokens.WithLabelValues(model, "completion").Observe(float64(usage.CompletionTokens))
}
