// Package domain holds the tuning job vocabulary shared by the HTTP layer
// and the lifecycle simulator.
package domain

// Status values a tuning job moves through. The update endpoint accepts any
// non-empty string; these are the values the service itself writes.
const (
	StatusQueued    = "queued"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)
