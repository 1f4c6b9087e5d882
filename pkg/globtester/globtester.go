// Package globtester provides the glob compile/evaluate engine backing
// econfig.OverrideTester.
//
// This is a direct generalization of the teacher's pkg/fileops exclusion
// matcher (PatternMatcher, doublestar-backed), adapted from "should this
// path be excluded from a backup" to "does this pattern include/exclude a
// relative path" as required by spec.md §4.A.
//
// Copyright (c) 2024 Econfig Contributors
// Licensed under the MIT License
package globtester

import (
	"fmt"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// ValidatePattern rejects absolute patterns and patterns containing a ".."
// segment, per spec.md §4.A ("reject any pattern that is absolute or
// contains a ".." segment").
func ValidatePattern(pattern string) error {
	normalized := filepath.ToSlash(pattern)
	if filepath.IsAbs(normalized) || strings.HasPrefix(normalized, "/") {
		return fmt.Errorf("invalid override pattern: %q must not be an absolute path", pattern)
	}
	for _, part := range strings.Split(normalized, "/") {
		if part == ".." {
			return fmt.Errorf("invalid override pattern: %q must not contain a \"..\" segment", pattern)
		}
	}
	return nil
}

// Match reports whether relPath (already made relative to the tester's base
// path) matches pattern.
//
// Glob semantics (spec.md §4.A): dotfiles are not excluded by default, which
// doublestar already honors. Patterns containing no path separator match
// only the base name of relPath; patterns with a separator match the full
// relative path.
func Match(pattern, relPath string) bool {
	normalizedPath := filepath.ToSlash(relPath)
	normalizedPattern := filepath.ToSlash(pattern)

	if !strings.Contains(normalizedPattern, "/") {
		matched, err := doublestar.Match(normalizedPattern, filepath.Base(normalizedPath))
		return err == nil && matched
	}

	matched, err := doublestar.Match(normalizedPattern, normalizedPath)
	return err == nil && matched
}

// MatchAny reports whether relPath matches any of patterns.
func MatchAny(patterns []string, relPath string) bool {
	for _, p := range patterns {
		if Match(p, relPath) {
			return true
		}
	}
	return false
}
