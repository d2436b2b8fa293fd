package rename

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"xrename/internal/errors"
	"xrename/internal/log"
	"xrename/pkg/types"
)

// Plan discovers the files under root, computes a proposed destination for
// every filtered-in file and resolves the batch into an ordered plan. The
// directory listing is snapshotted once; the plan is the single source of
// truth for execution.
func (e *Engine) Plan(root string) ([]types.PlanEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileError("path does not exist", root, errors.PathNotFound, nil)
		}
		return nil, errors.NewFileError("cannot access path", root, errors.PathNotFound, err)
	}
	if !info.IsDir() {
		return nil, errors.NewFileError("not a directory", root, errors.NotDirectory, nil)
	}

	scope, files, err := e.discover(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", root)
	}

	candidates := e.filter(files)
	total := len(candidates)
	log.Debug("discovered %d files, %d in batch", len(files), total)

	proposals := make([]Proposal, 0, total)
	for i, path := range candidates {
		entry := types.NewFileEntry(path, i)
		name, err := NewName(entry, i+1, total, e.cfg)
		proposals = append(proposals, Proposal{
			Source:      entry.Path,
			Destination: filepath.Join(entry.Dir, name),
			Err:         err,
		})
	}

	// Every existing path in the snapshot seeds the claimed set, batch
	// sources included: a rename is never allowed onto a path that exists
	// at planning time, even one a later entry would vacate. Execution
	// applies entries in order, so reusing a not-yet-vacated path would
	// overwrite data.
	return Resolve(proposals, scope), nil
}

// discover lists the scope in deterministic lexicographic order. It returns
// the full set of existing paths (files and directories) and the ordered
// file list. Symlinks are treated as opaque files and never followed.
func (e *Engine) discover(root string) (map[string]struct{}, []string, error) {
	scope := make(map[string]struct{})
	var files []string

	if e.cfg.Settings.Recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == root {
				return nil
			}
			scope[path] = struct{}{}
			if !d.IsDir() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
		return scope, files, nil
	}

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, err
	}
	for _, entry := range dirEntries {
		path := filepath.Join(root, entry.Name())
		scope[path] = struct{}{}
		if !entry.IsDir() {
			files = append(files, path)
		}
	}
	return scope, files, nil
}

// filter applies the extension filter and the name glob before indexing, so
// sequence numbers count only filtered-in files. Files outside the filter
// yield no plan entry at all.
func (e *Engine) filter(files []string) []string {
	if e.filterSet == nil && e.matcher == nil {
		return files
	}
	var kept []string
	for _, path := range files {
		if e.filterSet != nil {
			ext := strings.ToLower(filepath.Ext(path))
			if _, ok := e.filterSet[ext]; !ok {
				continue
			}
		}
		if e.matcher != nil && !e.matcher.Match(filepath.Base(path)) {
			continue
		}
		kept = append(kept, path)
	}
	return kept
}
