// Package rename implements the batch rename pipeline: deterministic
// discovery, name transformation, collision resolution and plan execution.
package rename

import (
	"github.com/gobwas/glob"

	"xrename/internal/config"
	"xrename/pkg/types"
)

// Engine runs the rename pipeline for one configuration.
type Engine struct {
	cfg       *config.Config
	dryRun    bool
	matcher   glob.Glob
	filterSet map[string]struct{}
}

// NewWithConfig creates an engine after validating the configuration.
// Invalid name fragments, unknown pattern placeholders and bad globs are
// rejected here, before any filesystem access.
func NewWithConfig(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidatePattern(cfg.Rules.Pattern); err != nil {
		return nil, err
	}
	matcher, err := cfg.CompileMatch()
	if err != nil {
		return nil, err
	}

	var filterSet map[string]struct{}
	if exts := cfg.FilterExtensions(); len(exts) > 0 {
		filterSet = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			filterSet[ext] = struct{}{}
		}
	}

	return &Engine{
		cfg:       cfg,
		dryRun:    cfg.Settings.DryRun,
		matcher:   matcher,
		filterSet: filterSet,
	}, nil
}

// SetDryRun sets whether operations should be performed or just simulated.
func (e *Engine) SetDryRun(dryRun bool) {
	e.dryRun = dryRun
}

// IsDryRun returns whether the engine is in dry run mode.
func (e *Engine) IsDryRun() bool {
	return e.dryRun
}

// Run plans and executes the batch under root, returning the finished plan
// and its summary. Root-path errors are the only fatal errors; everything
// after planning degrades to per-entry outcomes.
func (e *Engine) Run(root string) ([]types.PlanEntry, types.Summary, error) {
	entries, err := e.Plan(root)
	if err != nil {
		return nil, types.Summary{}, err
	}
	entries = Execute(entries, e.dryRun)
	return entries, types.Summarize(entries), nil
}
