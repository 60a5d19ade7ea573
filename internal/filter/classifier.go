package filter

import (
	"path/filepath"
	"strings"
)

// Classifier decides whether a file's diff block is kept or discarded.
//
// With a non-empty include set the classifier runs in include-list
// mode: only files matching an include pattern survive and the ignore
// set is not consulted. Otherwise every file is kept unless it matches
// an ignore pattern.
type Classifier struct {
	ignore  PatternSet
	include PatternSet
}

// NewClassifier creates a Classifier from an ignore set and an
// optional include set.
func NewClassifier(ignore, include PatternSet) *Classifier {
	return &Classifier{ignore: ignore, include: include}
}

// Keep reports whether the diff block for path should be retained.
func (c *Classifier) Keep(path string) bool {
	if len(c.include) > 0 {
		for _, p := range c.include {
			if p.Matches(path) {
				return true
			}
			if ext := bareExtension(p); ext != "" && fileExtension(path) == ext {
				return true
			}
		}
		return false
	}
	return !c.ignore.MatchesAny(path)
}

// bareExtension returns the extension named by a pattern of the
// literal shape `.<alnum>+` (e.g. ".py" -> "py"), or "" for any other
// pattern.
func bareExtension(p Pattern) string {
	s := strings.TrimSpace(string(p))
	if len(s) < 2 || s[0] != '.' {
		return ""
	}
	for _, r := range s[1:] {
		if !isAlnum(r) {
			return ""
		}
	}
	return s[1:]
}

// fileExtension returns the path's extension without the leading dot.
func fileExtension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
