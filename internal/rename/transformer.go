package rename

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"xrename/internal/config"
	"xrename/internal/errors"
	"xrename/pkg/types"
)

// Placeholder grammar for custom patterns. The grammar is closed: only
// {index} (optionally {index:0Nd} for an explicit width), {name} and {total}
// are substituted, everything else is rejected up front.
var (
	tokenPattern = regexp.MustCompile(`\{[^{}]*\}`)
	indexToken   = regexp.MustCompile(`^\{index(?::0([1-9])d)?\}$`)
)

const (
	nameToken  = "{name}"
	totalToken = "{total}"

	// defaultIndexWidth is the zero padding applied to sequence numbers
	// when the pattern does not specify one.
	defaultIndexWidth = 3
)

// characters that can never appear in a proposed file name
const illegalNameChars = "/\\\x00"

// ValidatePattern checks every placeholder in a custom pattern against the
// grammar. An unknown placeholder is an invalid name, reported before any
// filesystem access.
func ValidatePattern(pattern string) error {
	for _, token := range tokenPattern.FindAllString(pattern, -1) {
		switch {
		case token == nameToken, token == totalToken:
		case indexToken.MatchString(token):
		default:
			return errors.NewNameError("unknown pattern placeholder", token)
		}
	}
	return nil
}

// expandPattern substitutes the grammar placeholders. index is 1-based.
func expandPattern(pattern, base string, index, total int) string {
	return tokenPattern.ReplaceAllStringFunc(pattern, func(token string) string {
		if m := indexToken.FindStringSubmatch(token); m != nil {
			width := defaultIndexWidth
			if m[1] != "" {
				width, _ = strconv.Atoi(m[1])
			}
			return fmt.Sprintf("%0*d", width, index)
		}
		switch token {
		case nameToken:
			return base
		case totalToken:
			return strconv.Itoa(total)
		}
		return token
	})
}

// NewName computes the proposed name (base plus extension) for one entry.
// index is the 1-based position of the entry within the filtered batch and
// total is the batch size. The rule order is fixed: a custom pattern fully
// determines the base name; otherwise prefix and suffix wrap the original
// base and the sequence number lands after both. The extension rule applies
// in either case.
func NewName(entry types.FileEntry, index, total int, cfg *config.Config) (string, error) {
	var base string
	if cfg.Rules.Pattern != "" {
		base = expandPattern(cfg.Rules.Pattern, entry.Base, index, total)
	} else {
		base = entry.Base
		if cfg.Rules.Prefix != "" {
			base = cfg.Rules.Prefix + base
		}
		if cfg.Rules.Suffix != "" {
			base += cfg.Rules.Suffix
		}
		if cfg.Rules.Number {
			base = fmt.Sprintf("%s_%0*d", base, defaultIndexWidth, index)
		}
	}

	if base == "" {
		return "", errors.NewNameError("transformation produced an empty name", entry.Name())
	}

	ext := entry.Ext
	if newExt := cfg.NewExtension(); newExt != "" {
		ext = newExt
	}

	name := base + ext
	if strings.ContainsAny(name, illegalNameChars) {
		return "", errors.NewNameError("proposed name contains illegal characters", name)
	}
	return name, nil
}
