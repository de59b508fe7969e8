package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "hunters_http_requests_total"
	MetricNameHTTPRequestDuration  = "hunters_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "hunters_http_requests_in_flight"

	MetricNameEncountersSpawned = "hunters_encounters_spawned_total"
	MetricNameSpawnFailures     = "hunters_spawn_failures_total"
	MetricNameEncountersActive  = "hunters_encounters_active"
	MetricNameAttacksResolved   = "hunters_attacks_resolved_total"
	MetricNameMonstersKilled    = "hunters_monsters_killed_total"
	MetricNamePlayerDefeats     = "hunters_player_defeats_total"
	MetricNamePersistenceErrors = "hunters_persistence_errors_total"
	MetricNameSessionsActive    = "hunters_sessions_active"
)

// Help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextEncountersSpawned = "Encounters materialized by the spawn scheduler"
	HelpTextSpawnFailures     = "Spawn attempts discarded because materialization failed"
	HelpTextEncountersActive  = "Live encounters across all sessions"
	HelpTextAttacksResolved   = "Resolved attacks by outcome"
	HelpTextMonstersKilled    = "Monsters killed by archetype"
	HelpTextPlayerDefeats     = "Times a player's HP reached zero"
	HelpTextPersistenceErrors = "Failed asynchronous writes to inventory, diary or profile"
	HelpTextSessionsActive    = "Open player sessions"
)

// Labels
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelMonster = "monster"
	LabelOutcome = "outcome"
	LabelStore   = "store"
)

// HTTPLatencyBuckets in seconds.
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}
