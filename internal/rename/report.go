package rename

import (
	"os"
	"strings"

	"xrename/internal/errors"
	"xrename/pkg/types"
)

// WriteLog writes the finished plan to path, one line per entry in plan
// order, in the form "<outcome>: <source> -> <destination> [reason]".
func WriteLog(path string, entries []types.PlanEntry) error {
	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(entry.String())
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return errors.Wrapf(err, "failed to write log file %s", path)
	}
	return nil
}
