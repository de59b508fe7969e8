package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Game Metrics
var (
	EncountersSpawned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEncountersSpawned,
			Help: HelpTextEncountersSpawned,
		},
		[]string{LabelMonster},
	)

	SpawnFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSpawnFailures,
			Help: HelpTextSpawnFailures,
		},
	)

	EncountersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameEncountersActive,
			Help: HelpTextEncountersActive,
		},
	)

	AttacksResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAttacksResolved,
			Help: HelpTextAttacksResolved,
		},
		[]string{LabelOutcome},
	)

	MonstersKilled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMonstersKilled,
			Help: HelpTextMonstersKilled,
		},
		[]string{LabelMonster},
	)

	PlayerDefeats = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlayerDefeats,
			Help: HelpTextPlayerDefeats,
		},
	)

	PersistenceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePersistenceErrors,
			Help: HelpTextPersistenceErrors,
		},
		[]string{LabelStore},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSessionsActive,
			Help: HelpTextSessionsActive,
		},
	)
)
