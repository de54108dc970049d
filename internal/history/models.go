package history

import "time"

// Run is one recorded page update: when it ran and what it produced.
// Article content itself is never stored.
type Run struct {
	ID         string
	StartedAt  time.Time
	Duration   time.Duration
	Articles   int
	Categories int
	Warnings   int
	Output     string
}

// Summary aggregates the whole runs table.
type Summary struct {
	Runs          int
	TotalArticles int
	LastRun       time.Time
	SizeBytes     int64
}
