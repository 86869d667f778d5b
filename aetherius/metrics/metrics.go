package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aetherius"

var (
	XPAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "xp_awarded_total",
			Help:      "XP granted, by source",
		},
		[]string{"source"},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_ups_total",
			Help:      "Level ups announced",
		},
	)

	CooldownRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cooldown_rejections_total",
			Help:      "Activities rejected by a cooldown gate",
		},
		[]string{"gate", "layer"},
	)

	Crystals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "crystal",
			Name:      "events_total",
			Help:      "Crystal shard lifecycle events",
		},
		[]string{"event"}, // spawned, claimed, expired, rejected
	)

	Quests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quest",
			Name:      "events_total",
			Help:      "Daily quest lifecycle events",
		},
		[]string{"event", "kind"},
	)

	Blessings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blessings_total",
			Help:      "Blessing attempts by result",
		},
		[]string{"result"},
	)

	RoleGrants = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "role_grants_total",
			Help:      "Role reward grants by status",
		},
		[]string{"status"},
	)

	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Slash command handling time",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"command", "status"},
	)
)

func ObserveCommand(command, status string, took time.Duration) {
	CommandDuration.WithLabelValues(command, status).Observe(took.Seconds())
}
