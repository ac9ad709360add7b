package goalqueue

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "twelveweeks_client",
			Subsystem: "goalqueue",
			Name:      "submissions_total",
			Help:      "Jobs accepted into the goal queue.",
		},
		[]string{"shard"},
	)

	queueFullTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "twelveweeks_client",
			Subsystem: "goalqueue",
			Name:      "queue_full_total",
			Help:      "Submissions rejected because a shard queue was full.",
		},
		[]string{"shard"},
	)

	queueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "twelveweeks_client",
			Subsystem: "goalqueue",
			Name:      "queue_depth",
			Help:      "Current depth of each shard queue.",
		},
		[]string{"shard"},
	)

	runDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "twelveweeks_client",
			Subsystem: "goalqueue",
			Name:      "run_duration_seconds",
			Help:      "Wall time spent executing one job attempt.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"shard"},
	)
)

// labelFor keeps metric label cardinality bounded to the shard count.
func labelFor(shard int) string { return strconv.Itoa(shard) }
