package twelveweeks

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "twelveweeks_client",
			Name:      "checkins_total",
			Help:      "Check-in submissions by outcome (committed, rolled_back, rejected).",
		},
		[]string{"outcome"},
	)

	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "twelveweeks_client",
			Name:      "auth_attempts_total",
			Help:      "Session operations (login, register, restore) by result.",
		},
		[]string{"op", "result"},
	)
)
