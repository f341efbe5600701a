package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameLootGenerated      = "armory_loot_generated_total"
	MetricNameSharesEncoded      = "armory_shares_encoded_total"
	MetricNameSharesReceived     = "armory_shares_received_total"
	MetricNameShareFailures      = "armory_share_failures_total"
	MetricNameScanSessionsActive = "armory_scan_sessions_active"
	MetricNameScanFrames         = "armory_scan_frames_total"
	MetricNameSavesWritten       = "armory_character_saves_total"
	MetricNameSavesCoalesced     = "armory_character_saves_coalesced_total"
	MetricNameCacheLookups       = "armory_character_cache_lookups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextLootGenerated      = "Total number of weapons generated, by rarity and class"
	HelpTextSharesEncoded      = "Total number of weapons encoded into share payloads"
	HelpTextSharesReceived     = "Total number of weapons decoded from share payloads"
	HelpTextShareFailures      = "Total number of failed share encodes or decodes, by reason"
	HelpTextScanSessionsActive = "Current number of active camera scan sessions"
	HelpTextScanFrames         = "Total number of scanned frames, by outcome"
	HelpTextSavesWritten       = "Total number of character saves written, by outcome"
	HelpTextSavesCoalesced     = "Total number of character saves merged into a pending write"
	HelpTextCacheLookups       = "Total number of character cache lookups, by result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelRarity  = "rarity"
	LabelClass   = "class"
	LabelReason  = "reason"
	LabelOutcome = "outcome"
	LabelResult  = "result"
)

// Label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeRetry   = "retry"

	ResultHit  = "hit"
	ResultMiss = "miss"
)
