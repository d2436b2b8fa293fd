package types

import (
	"path/filepath"
	"strings"
)

// FileEntry represents a single discovered file in the batch.
// It is immutable once discovery completes.
type FileEntry struct {
	Path  string `json:"path"`  // Absolute path of the file
	Dir   string `json:"dir"`   // Parent directory
	Base  string `json:"base"`  // Base name without extension
	Ext   string `json:"ext"`   // Extension including the leading dot, verbatim
	Index int    `json:"index"` // Discovery index, stable across runs
}

// NewFileEntry builds a FileEntry from an absolute path and its discovery index.
func NewFileEntry(path string, index int) FileEntry {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	return FileEntry{
		Path:  path,
		Dir:   filepath.Dir(path),
		Base:  strings.TrimSuffix(name, ext),
		Ext:   ext,
		Index: index,
	}
}

// Name returns the base name of the file including its extension.
func (f FileEntry) Name() string {
	return f.Base + f.Ext
}

// ExtLower returns the extension lowercased for filter comparison.
func (f FileEntry) ExtLower() string {
	return strings.ToLower(f.Ext)
}
