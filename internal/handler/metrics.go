package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "troubleshoot_token_verifications_total",
			Help: "Total number of token verification attempts by provider and status.",
		},
		[]string{"provider", "status"},
	)

	rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "troubleshoot_generation_rate_limited_total",
		Help: "Total number of generation requests rejected by the rate limiter.",
	})
)
