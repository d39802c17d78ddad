package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	completionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "troubleshoot_completions_total",
			Help: "Completion events applied to profiles.",
		},
		[]string{"kind", "result"}, // result: added, duplicate, failed, leaderboard_failed, publish_failed
	)
	gamesStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "troubleshoot_games_started_total",
			Help: "Scenario walkthroughs started.",
		},
		[]string{"source"},
	)
	activeGames = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "troubleshoot_active_games",
			Help: "Scenario walkthroughs currently held in memory.",
		},
	)
	quizSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "troubleshoot_quiz_submissions_total",
			Help: "Graded quiz submissions.",
		},
		[]string{"passed"},
	)
)
