package rename_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xrename/internal/config"
	"xrename/internal/errors"
	"xrename/internal/rename"
	"xrename/pkg/types"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("content"), 0644))
	}
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	dirEntries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range dirEntries {
		names = append(names, e.Name())
	}
	return names
}

func TestEnginePrefixBatch(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.jpg", "b.png", "c.jpg")

	cfg := config.New()
	cfg.Rules.Prefix = "IMG_"

	engine, err := rename.NewWithConfig(cfg)
	require.NoError(t, err)

	entries, summary, err := engine.Run(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 3, summary.Applied)
	assert.Zero(t, summary.Skipped)
	assert.Zero(t, summary.Failed)

	expected := map[string]string{
		"a.jpg": "IMG_a.jpg",
		"b.png": "IMG_b.png",
		"c.jpg": "IMG_c.jpg",
	}
	for _, entry := range entries {
		assert.Equal(t, types.Applied, entry.Outcome)
		src := filepath.Base(entry.Source)
		assert.Equal(t, expected[src], filepath.Base(entry.Destination))
	}

	assert.ElementsMatch(t, []string{"IMG_a.jpg", "IMG_b.png", "IMG_c.jpg"}, listNames(t, tmpDir))
}

func TestEngineFilterAndNumbering(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.jpg", "b.png", "c.jpg")

	cfg := config.New()
	cfg.Filter.Extensions = []string{".jpg"}
	cfg.Rules.Number = true

	engine, err := rename.NewWithConfig(cfg)
	require.NoError(t, err)

	entries, _, err := engine.Run(tmpDir)
	require.NoError(t, err)

	// b.png is outside the filter: excluded entirely, not even skipped
	require.Len(t, entries, 2)
	assert.Equal(t, "a_001.jpg", filepath.Base(entries[0].Destination))
	assert.Equal(t, "c_002.jpg", filepath.Base(entries[1].Destination))

	assert.ElementsMatch(t, []string{"a_001.jpg", "b.png", "c_002.jpg"}, listNames(t, tmpDir))
}

func TestEngineCollisionWithExistingFile(t *testing.T) {
	cfg := config.New()
	cfg.Rules.Prefix = "y"

	t.Run("no collision renames cleanly", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFiles(t, tmpDir, "x.txt")

		engine, err := rename.NewWithConfig(cfg)
		require.NoError(t, err)

		entries, _, err := engine.Run(tmpDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, types.Applied, entries[0].Outcome)
		assert.FileExists(t, filepath.Join(tmpDir, "yx.txt"))
	})

	t.Run("pre-existing target skips the rename", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFiles(t, tmpDir, "x.txt", "yx.txt")

		engine, err := rename.NewWithConfig(cfg)
		require.NoError(t, err)

		entries, _, err := engine.Run(tmpDir)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		// x.txt -> yx.txt collides with a path that exists at planning
		// time, even though yx.txt is itself being renamed later in the
		// batch. Renaming onto it would destroy it before its turn.
		assert.Equal(t, "x.txt", filepath.Base(entries[0].Source))
		assert.Equal(t, types.Skipped, entries[0].Outcome)
		assert.Equal(t, types.ReasonCollision, entries[0].Reason)
		assert.FileExists(t, filepath.Join(tmpDir, "x.txt"))

		// yx.txt itself renames cleanly
		assert.Equal(t, types.Applied, entries[1].Outcome)
		assert.FileExists(t, filepath.Join(tmpDir, "yyx.txt"))
	})
}

func TestEngineDryRun(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "one.txt", "two.txt")

	cfg := config.New()
	cfg.Rules.Number = true
	cfg.Settings.DryRun = true

	engine, err := rename.NewWithConfig(cfg)
	require.NoError(t, err)
	assert.True(t, engine.IsDryRun())

	entries, summary, err := engine.Run(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 2, summary.Applied)
	for _, entry := range entries {
		assert.Equal(t, types.Applied, entry.Outcome)
	}

	// the filesystem listing is unchanged afterward
	assert.ElementsMatch(t, []string{"one.txt", "two.txt"}, listNames(t, tmpDir))
}

func TestEngineEmptyDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := config.New()
	cfg.Rules.Prefix = "x_"

	engine, err := rename.NewWithConfig(cfg)
	require.NoError(t, err)

	entries, summary, err := engine.Run(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, summary.Total)
}

func TestEngineRootPathErrors(t *testing.T) {
	cfg := config.New()
	engine, err := rename.NewWithConfig(cfg)
	require.NoError(t, err)

	t.Run("missing path", func(t *testing.T) {
		_, err := engine.Plan(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.True(t, errors.IsPathNotFound(err))
	})

	t.Run("path is a file", func(t *testing.T) {
		tmpDir := t.TempDir()
		file := filepath.Join(tmpDir, "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		_, err := engine.Plan(file)
		require.Error(t, err)
		assert.True(t, errors.IsNotDirectory(err))
	})
}

func TestEngineInvalidConfig(t *testing.T) {
	t.Run("prefix with path separator", func(t *testing.T) {
		cfg := config.New()
		cfg.Rules.Prefix = "evil/"
		_, err := rename.NewWithConfig(cfg)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidName(err))
	})

	t.Run("unknown pattern placeholder", func(t *testing.T) {
		cfg := config.New()
		cfg.Rules.Pattern = "{bogus}"
		_, err := rename.NewWithConfig(cfg)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidName(err))
	})

	t.Run("broken match glob", func(t *testing.T) {
		cfg := config.New()
		cfg.Filter.Match = "[unterminated"
		_, err := rename.NewWithConfig(cfg)
		require.Error(t, err)
	})
}

func TestEngineNoRulesSkipsUnchanged(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "same.txt")

	engine, err := rename.NewWithConfig(config.New())
	require.NoError(t, err)

	entries, summary, err := engine.Run(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.Skipped, entries[0].Outcome)
	assert.Equal(t, types.ReasonUnchanged, entries[0].Reason)
	assert.Equal(t, 1, summary.Skipped)
}

func TestEngineRecursiveNumbering(t *testing.T) {
	tmpDir := t.TempDir()
	sub := filepath.Join(tmpDir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFiles(t, tmpDir, "a.txt", "z.txt")
	writeFiles(t, sub, "m.txt")

	cfg := config.New()
	cfg.Rules.Number = true
	cfg.Settings.Recursive = true

	engine, err := rename.NewWithConfig(cfg)
	require.NoError(t, err)

	entries, _, err := engine.Run(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// lexicographic walk order: a.txt, sub/m.txt, z.txt; numbering is
	// gapless across subdirectories
	assert.Equal(t, "a_001.txt", filepath.Base(entries[0].Destination))
	assert.Equal(t, "m_002.txt", filepath.Base(entries[1].Destination))
	assert.Equal(t, "z_003.txt", filepath.Base(entries[2].Destination))

	// files are renamed in place, inside their own directory
	assert.FileExists(t, filepath.Join(sub, "m_002.txt"))
	for _, entry := range entries {
		assert.Equal(t, types.Applied, entry.Outcome)
	}
}

func TestEngineNonRecursiveIgnoresSubdirectories(t *testing.T) {
	tmpDir := t.TempDir()
	sub := filepath.Join(tmpDir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFiles(t, tmpDir, "top.txt")
	writeFiles(t, sub, "nested.txt")

	cfg := config.New()
	cfg.Rules.Prefix = "p_"

	engine, err := rename.NewWithConfig(cfg)
	require.NoError(t, err)

	entries, _, err := engine.Run(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "top.txt", filepath.Base(entries[0].Source))
	assert.FileExists(t, filepath.Join(sub, "nested.txt"))
}

func TestEngineGlobMatchFilter(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "IMG_100.jpg", "IMG_200.jpg", "vacation.jpg")

	cfg := config.New()
	cfg.Filter.Match = "IMG_*"
	cfg.Rules.Suffix = "_edit"

	engine, err := rename.NewWithConfig(cfg)
	require.NoError(t, err)

	entries, _, err := engine.Run(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.FileExists(t, filepath.Join(tmpDir, "IMG_100_edit.jpg"))
	assert.FileExists(t, filepath.Join(tmpDir, "IMG_200_edit.jpg"))
	assert.FileExists(t, filepath.Join(tmpDir, "vacation.jpg"))
}

func TestPlanIsDeterministic(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "c.txt", "a.txt", "b.txt")

	cfg := config.New()
	cfg.Rules.Number = true
	cfg.Settings.DryRun = true

	engine, err := rename.NewWithConfig(cfg)
	require.NoError(t, err)

	first, err := engine.Plan(tmpDir)
	require.NoError(t, err)
	second, err := engine.Plan(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, first, second, "planning the same unmodified directory twice must yield identical plans")
}

func TestExecutePartialFailureIsolation(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.txt", "b.txt", "c.txt")

	cfg := config.New()
	cfg.Rules.Prefix = "ok_"

	engine, err := rename.NewWithConfig(cfg)
	require.NoError(t, err)

	entries, err := engine.Plan(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// vanish the middle source between planning and execution
	require.NoError(t, os.Remove(filepath.Join(tmpDir, "b.txt")))

	entries = rename.Execute(entries, false)

	assert.Equal(t, types.Applied, entries[0].Outcome)
	assert.Equal(t, types.Failed, entries[1].Outcome)
	assert.NotEmpty(t, entries[1].Reason)
	assert.Equal(t, types.Applied, entries[2].Outcome, "entries after a failure must still execute")

	// every entry reached a terminal outcome
	for _, entry := range entries {
		assert.NotEqual(t, types.Planned, entry.Outcome)
	}
}

func TestEngineDotfileYieldsInvalidNameSkip(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, ".hidden", "normal.doc")

	// an extension change leaves a dotfile with no base name at all
	cfg := config.New()
	cfg.Rules.Extension = "txt"

	engine, err := rename.NewWithConfig(cfg)
	require.NoError(t, err)

	entries, _, err := engine.Run(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, types.Skipped, entries[0].Outcome)
	assert.Equal(t, types.ReasonInvalidName, entries[0].Reason)
	assert.Equal(t, types.Applied, entries[1].Outcome)
	assert.FileExists(t, filepath.Join(tmpDir, "normal.txt"))
	assert.FileExists(t, filepath.Join(tmpDir, ".hidden"))
}
