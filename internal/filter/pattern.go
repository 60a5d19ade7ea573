package filter

import (
	"path/filepath"
	"strings"
)

// Pattern is a single shell-style glob (`*`, `?`, character classes)
// matched against a file path. Immutable once constructed.
type Pattern string

// Matches reports whether the pattern matches the full relative path
// or its base filename. Matching is case-sensitive. A malformed glob
// never matches.
func (p Pattern) Matches(path string) bool {
	pat := strings.TrimSpace(string(p))
	if pat == "" {
		return false
	}
	if ok, _ := filepath.Match(pat, path); ok {
		return true
	}
	ok, _ := filepath.Match(pat, filepath.Base(path))
	return ok
}

// PatternSet is an ordered sequence of patterns. Duplicates are
// harmless since matching is a pure disjunction.
type PatternSet []Pattern

// NewPatternSet builds a PatternSet from raw strings, trimming
// surrounding whitespace and dropping entries that end up empty.
func NewPatternSet(patterns []string) PatternSet {
	set := make(PatternSet, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		set = append(set, Pattern(p))
	}
	return set
}

// MatchesAny reports whether any pattern in the set matches the path.
func (s PatternSet) MatchesAny(path string) bool {
	for _, p := range s {
		if p.Matches(path) {
			return true
		}
	}
	return false
}

// SplitList splits a comma-separated pattern list into its elements,
// trimming whitespace and dropping empties.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// DefaultIgnorePatterns is the built-in ignore list, used only when no
// other pattern source contributes anything.
var DefaultIgnorePatterns = []string{
	"*.lock",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"go.sum",
	"*.min.js",
	"*.min.css",
	"*.map",
	"*.svg",
	"*.png",
	"*.jpg",
	"*.jpeg",
	"*.gif",
	"*.ico",
	"*.pdf",
	"node_modules/*",
	"vendor/*",
	"dist/*",
	"build/*",
}

// Layers holds the ignore-pattern sources ordered from highest to
// lowest priority.
type Layers struct {
	// Override is the configuration override. When non-empty it is
	// used verbatim and every other layer is ignored.
	Override []string

	// CLI holds patterns supplied on the command line.
	CLI []string

	// ProjectFile holds patterns read from the project ignore file
	// (.aicommitignore).
	ProjectFile []string

	// VCSFile holds patterns read from the version-control ignore
	// file (.gitignore).
	VCSFile []string

	// Defaults is the built-in fallback list, consulted only when all
	// layers above are empty.
	Defaults []string
}

// Resolve produces the effective PatternSet. The override layer is
// winner-take-all; otherwise CLI, project-file and VCS-file patterns
// are concatenated in that order, falling back to the defaults when
// all three are empty. No cross-layer deduplication is performed.
func (l Layers) Resolve() PatternSet {
	if len(l.Override) > 0 {
		return NewPatternSet(l.Override)
	}

	merged := make([]string, 0, len(l.CLI)+len(l.ProjectFile)+len(l.VCSFile))
	merged = append(merged, l.CLI...)
	merged = append(merged, l.ProjectFile...)
	merged = append(merged, l.VCSFile...)
	if len(merged) == 0 {
		merged = l.Defaults
	}
	return NewPatternSet(merged)
}
