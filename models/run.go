package models

import "time"

const (
	RunStatusStarted   = "started"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// LookupRun is the audit row written for every assessor lookup. It records
// the query and the outcome only; fetched assessment data is never stored.
type LookupRun struct {
	ID          int64      `json:"id"`
	RequestID   string     `json:"request_id"`
	Region      string     `json:"region"`
	Street      string     `json:"street"`
	Number      string     `json:"number"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	FieldsFound int        `json:"fields_found"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	DurationMS  int64      `json:"duration_ms"`
}

// SourceCheck is one scheduled availability probe of the assessor site.
type SourceCheck struct {
	ID         int64     `json:"id"`
	CheckedAt  time.Time `json:"checked_at"`
	StatusCode int       `json:"status_code"`
	LatencyMS  int64     `json:"latency_ms"`
	OK         bool      `json:"ok"`
}
