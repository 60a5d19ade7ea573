package filter

import (
	"regexp"
	"strings"
)

// diffHeaderPattern matches the per-file header emitted by git diff.
// The a/-side capture is taken as the file path.
var diffHeaderPattern = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)

// ParseDiffHeader parses a `diff --git a/<path> b/<path>` header line.
// It returns the a/-side path and whether the line is a header.
func ParseDiffHeader(line string) (string, bool) {
	m := diffHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Splitter scans raw diff text, partitions it into per-file blocks and
// retains the blocks the classifier keeps.
type Splitter struct {
	classifier *Classifier
}

// NewSplitter creates a Splitter using the given classifier.
func NewSplitter(c *Classifier) *Splitter {
	return &Splitter{classifier: c}
}

// Filter returns the newline-joined concatenation of the kept blocks
// in encounter order. Lines before the first header are discarded.
// An empty result means no relevant changes survived filtering.
func (s *Splitter) Filter(raw string) string {
	if raw == "" {
		return ""
	}

	var kept []string
	var block []string
	blockPath := ""
	inBlock := false

	finalize := func() {
		if inBlock && s.classifier.Keep(blockPath) {
			kept = append(kept, strings.Join(block, "\n"))
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		if path, ok := ParseDiffHeader(line); ok {
			finalize()
			block = []string{line}
			blockPath = path
			inBlock = true
			continue
		}
		if inBlock {
			block = append(block, line)
		}
	}
	finalize()

	return strings.Join(kept, "\n")
}
