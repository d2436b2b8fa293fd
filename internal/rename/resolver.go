package rename

import (
	"xrename/internal/log"
	"xrename/pkg/types"
)

// Proposal pairs a source path with the destination the transformer computed
// for it. Err carries a per-entry transformation failure, which the resolver
// downgrades to a skip instead of aborting the batch.
type Proposal struct {
	Source      string
	Destination string
	Err         error
}

// Resolve walks proposals in discovery order and produces the plan. The
// claimed set starts from the seed of existing paths the planner
// snapshotted; each accepted destination joins it, so later duplicates are
// skipped rather than silently overwritten or renamed around. First
// discovered wins, and no modified name is ever invented to dodge a
// collision.
func Resolve(proposals []Proposal, seed map[string]struct{}) []types.PlanEntry {
	claimed := make(map[string]struct{}, len(seed)+len(proposals))
	for path := range seed {
		claimed[path] = struct{}{}
	}

	entries := make([]types.PlanEntry, 0, len(proposals))
	for _, p := range proposals {
		entry := types.PlanEntry{Source: p.Source, Destination: p.Destination}
		switch {
		case p.Err != nil:
			entry.Destination = p.Source
			entry.Outcome = types.Skipped
			entry.Reason = types.ReasonInvalidName
			log.Warn("skipping %s: %v", p.Source, p.Err)
		case p.Destination == p.Source:
			entry.Outcome = types.Skipped
			entry.Reason = types.ReasonUnchanged
		case contains(claimed, p.Destination):
			entry.Outcome = types.Skipped
			entry.Reason = types.ReasonCollision
			log.Warn("skipping %s: destination %s already taken", p.Source, p.Destination)
		default:
			entry.Outcome = types.Planned
			claimed[p.Destination] = struct{}{}
		}
		entries = append(entries, entry)
	}
	return entries
}

func contains(set map[string]struct{}, path string) bool {
	_, ok := set[path]
	return ok
}
