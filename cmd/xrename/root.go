package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"xrename/internal/config"
	"xrename/internal/log"
	"xrename/internal/rename"
	"xrename/pkg/types"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var (
		cfgFile   string
		verbose   bool
		prefix    string
		suffix    string
		number    bool
		newExt    string
		pattern   string
		filter    string
		match     string
		recursive bool
		dryRun    bool
		logPath   string
	)

	rootCmd := &cobra.Command{
		Use:   "xrename [flags] DIRECTORY",
		Short: "Batch rename files in a directory tree",
		Long: `xrename renames every file in a directory according to the enabled
rules: prefix, suffix, sequential numbering, extension change or a custom
pattern. Collisions are detected up front and surfaced as skips, never
resolved by overwriting or inventing names.

Usage examples:
  # Add a prefix
  xrename /path/to/dir --prefix "IMG_"

  # Number jpg files only
  xrename /path/to/dir --filter ".jpg" --number

  # Custom pattern with a 4-digit counter
  xrename /path/to/dir --pattern "shot_{index:04d}"

  # Preview without touching anything
  xrename /path/to/dir --suffix "_backup" --dry-run`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetDebug(verbose)

			var cfg *config.Config
			if cfgFile != "" {
				loaded, err := config.LoadConfigFile(cfgFile)
				if err != nil {
					return err
				}
				cfg = loaded
			} else {
				cfg = config.New()
			}

			// Flags override anything loaded from the config file.
			flags := cmd.Flags()
			if flags.Changed("prefix") {
				cfg.Rules.Prefix = prefix
			}
			if flags.Changed("suffix") {
				cfg.Rules.Suffix = suffix
			}
			if flags.Changed("number") {
				cfg.Rules.Number = number
			}
			if flags.Changed("ext") {
				cfg.Rules.Extension = newExt
			}
			if flags.Changed("pattern") {
				cfg.Rules.Pattern = pattern
			}
			if flags.Changed("filter") {
				cfg.Filter.Extensions = splitFilter(filter)
			}
			if flags.Changed("match") {
				cfg.Filter.Match = match
			}
			if flags.Changed("recursive") {
				cfg.Settings.Recursive = recursive
			}
			if flags.Changed("dry-run") {
				cfg.Settings.DryRun = dryRun
			}
			if flags.Changed("log") {
				cfg.Settings.LogFile = logPath
			}

			engine, err := rename.NewWithConfig(cfg)
			if err != nil {
				return err
			}

			entries, summary, err := engine.Run(args[0])
			if err != nil {
				return err
			}

			if cfg.Settings.LogFile != "" {
				if err := rename.WriteLog(cfg.Settings.LogFile, entries); err != nil {
					return err
				}
			}

			printSummary(cmd.OutOrStdout(), summary, engine.IsDryRun())

			// Partial failure is reported, not fatal. Only a batch where
			// every planned rename failed exits non-zero.
			if summary.Failed > 0 && summary.Applied == 0 {
				return fmt.Errorf("all %d planned renames failed", summary.Failed)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file with rule presets (flags take precedence)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVar(&prefix, "prefix", "", "prefix to add before the filename")
	rootCmd.Flags().StringVar(&suffix, "suffix", "", "suffix to add after the filename (before the extension)")
	rootCmd.Flags().BoolVar(&number, "number", false, "add sequential numbers to filenames (file_001, file_002, ...)")
	rootCmd.Flags().StringVar(&newExt, "ext", "", "change the file extension (e.g. jpg, png)")
	rootCmd.Flags().StringVar(&pattern, "pattern", "", "custom filename pattern (e.g. \"file_{index:03d}\")")
	rootCmd.Flags().StringVar(&filter, "filter", "", "only process these extensions, comma separated (e.g. \".jpg,.png\")")
	rootCmd.Flags().StringVar(&match, "match", "", "only process filenames matching this glob (e.g. \"IMG_*\")")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "process subdirectories recursively")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview changes without renaming anything")
	rootCmd.Flags().StringVar(&logPath, "log", "", "write the plan log to this file")

	return rootCmd
}

// splitFilter parses the comma separated --filter value.
func splitFilter(raw string) []string {
	var exts []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			exts = append(exts, part)
		}
	}
	return exts
}

func printSummary(out io.Writer, summary types.Summary, dryRun bool) {
	if dryRun {
		fmt.Fprintf(out, "\n[Preview mode] %d of %d files would be renamed.\n", summary.Applied, summary.Total)
		return
	}

	fmt.Fprintf(out, "\nSuccessfully renamed %d of %d files.\n", summary.Applied, summary.Total)
	if summary.Skipped > 0 {
		fmt.Fprintf(out, "%d files were skipped.\n", summary.Skipped)
	}
	if summary.Failed > 0 {
		fmt.Fprintf(out, "%d files failed to rename.\n", summary.Failed)
	}
}
