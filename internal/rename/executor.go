package rename

import (
	"os"

	"xrename/internal/log"
	"xrename/pkg/types"
)

// Execute applies the plan in order. Planned entries become Applied or
// Failed; one failure never aborts the batch. In dry-run mode entries are
// marked Applied without touching the filesystem. Destinations are taken
// from the plan verbatim, never re-derived.
func Execute(entries []types.PlanEntry, dryRun bool) []types.PlanEntry {
	for i := range entries {
		if entries[i].Outcome != types.Planned {
			continue
		}

		if dryRun {
			log.Info("[preview] %s -> %s", entries[i].Source, entries[i].Destination)
			entries[i].Outcome = types.Applied
			continue
		}

		if err := os.Rename(entries[i].Source, entries[i].Destination); err != nil {
			log.Error("rename failed for %s: %v", entries[i].Source, err)
			entries[i].Outcome = types.Failed
			entries[i].Reason = err.Error()
			continue
		}

		log.Info("renamed %s -> %s", entries[i].Source, entries[i].Destination)
		entries[i].Outcome = types.Applied
	}
	return entries
}
