package econfig

import (
	"path/filepath"

	"github.com/tidylint/econfig/pkg/globtester"
)

// patternGroup is one {includes, excludes} constraint pair (spec.md §3:
// "an array of pattern-groups, each {includes, excludes} (either may be
// absent meaning "no constraint")").
type patternGroup struct {
	includes []string
	excludes []string
}

// OverrideTester evaluates glob include/exclude predicates against file
// paths, rebased on a declared base path, composed via logical AND
// (spec.md §4.A). It is immutable after construction.
type OverrideTester struct {
	groups   []patternGroup
	basePath string
}

// NewOverrideTester constructs a tester from files/excludedFiles (each a
// list of glob patterns, possibly nil/empty) and a base path.
// Per spec.md §4.A, it returns (nil, nil) — "no tester" — when both inputs
// are empty, and an error when any pattern is absolute or contains a ".."
// segment.
func NewOverrideTester(files, excludedFiles []string, basePath string) (*OverrideTester, error) {
	for _, p := range files {
		if err := globtester.ValidatePattern(p); err != nil {
			return nil, err
		}
	}
	for _, p := range excludedFiles {
		if err := globtester.ValidatePattern(p); err != nil {
			return nil, err
		}
	}

	if len(files) == 0 && len(excludedFiles) == 0 {
		return nil, nil
	}

	return &OverrideTester{
		groups:   []patternGroup{{includes: files, excludes: excludedFiles}},
		basePath: basePath,
	}, nil
}

// And composes a and b: the result matches a path only if every pattern
// group from both matches (spec.md §4.A). Either operand may be nil, in
// which case the other is returned unchanged. The composed base path is
// a's base path.
func And(a, b *OverrideTester) *OverrideTester {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	groups := make([]patternGroup, 0, len(a.groups)+len(b.groups))
	groups = append(groups, a.groups...)
	groups = append(groups, b.groups...)
	return &OverrideTester{groups: groups, basePath: a.basePath}
}

// WithBasePath returns a copy of t rebound to a new base path, used by the
// factory to rebind criteria to the outermost importer's directory
// (spec.md §4.F step 9).
func (t *OverrideTester) WithBasePath(basePath string) *OverrideTester {
	if t == nil {
		return nil
	}
	cp := *t
	cp.basePath = basePath
	return &cp
}

// BasePath reports the directory from which this tester's patterns are
// evaluated.
func (t *OverrideTester) BasePath() string {
	if t == nil {
		return ""
	}
	return t.basePath
}

// Test reports whether absolutePath matches every pattern group.
func (t *OverrideTester) Test(absolutePath string) bool {
	if t == nil {
		return true
	}

	relative, err := filepath.Rel(t.basePath, absolutePath)
	if err != nil {
		relative = absolutePath
	}
	relative = filepath.ToSlash(relative)

	for _, g := range t.groups {
		if len(g.includes) > 0 && !globtester.MatchAny(g.includes, relative) {
			return false
		}
		if len(g.excludes) > 0 && globtester.MatchAny(g.excludes, relative) {
			return false
		}
	}
	return true
}
