// Package storage persists validation run events for trend reporting.
package storage

import "time"

// EventWriter is the interface for writing validation run events.
// Write() must NEVER block the caller.
type EventWriter interface {
	Write(event *ValidationEvent)
	Close()
}

// ValidationEvent is one validation run as persisted, summary-level only.
// Tool payloads stay out of storage; issue counts and the maturity signal
// are what trend dashboards consume.
type ValidationEvent struct {
	RequestID       string
	ProjectID       string
	Timestamp       time.Time
	SourceKind      string // "file" or "server"
	SourceLocation  string
	ToolCount       int32
	ValidToolCount  int32
	Valid           bool
	ErrorCount      int32
	WarningCount    int32
	SuggestionCount int32
	MaturityScore   int32
	MaturityLevel   string
	EngineVersion   string
	ConfigHash      string
	LatencyMs       float32
}
