package types

import "fmt"

// Outcome is the terminal (or pending) state of a single plan entry.
type Outcome string

const (
	// Planned means the rename was accepted by the resolver and awaits execution.
	Planned Outcome = "planned"
	// Skipped means the resolver rejected the rename; Reason says why.
	Skipped Outcome = "skipped"
	// Applied means the rename was performed (or simulated in dry-run).
	Applied Outcome = "applied"
	// Failed means the filesystem rejected the rename; Reason carries the error.
	Failed Outcome = "failed"
)

// Skip reasons used by the resolver.
const (
	ReasonUnchanged   = "unchanged"
	ReasonCollision   = "collision"
	ReasonInvalidName = "invalid-name"
)

// PlanEntry holds the proposed rename for one file and its outcome.
// The full entry list is the audit trail: entries are never removed,
// only their Outcome advances.
type PlanEntry struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Outcome     Outcome `json:"outcome"`
	Reason      string  `json:"reason,omitempty"`
}

// String renders the entry in the log file format:
// "<outcome>: <source> -> <destination> [reason]".
func (e PlanEntry) String() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s -> %s [%s]", e.Outcome, e.Source, e.Destination, e.Reason)
	}
	return fmt.Sprintf("%s: %s -> %s", e.Outcome, e.Source, e.Destination)
}

// Summary aggregates entry outcomes for the final report.
type Summary struct {
	Total   int `json:"total"`
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Summarize counts outcomes over a finished plan.
func Summarize(entries []PlanEntry) Summary {
	s := Summary{Total: len(entries)}
	for _, e := range entries {
		switch e.Outcome {
		case Applied:
			s.Applied++
		case Skipped:
			s.Skipped++
		case Failed:
			s.Failed++
		}
	}
	return s
}
