package filter

import (
	"bufio"
	"os"
	"strings"
)

// ReadIgnoreFile reads a line-oriented ignore file and returns its
// patterns. A missing or unreadable file contributes zero patterns
// rather than an error.
//
// Per line: blank lines and lines starting with `#` are skipped, the
// first unescaped `#` truncates the line, `\#` is restored to a
// literal `#`, and trailing whitespace is stripped.
func ReadIgnoreFile(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if p := cleanIgnoreLine(scanner.Text()); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// cleanIgnoreLine applies the ignore-file comment and whitespace rules
// to a single line, returning the resulting pattern or "" when the
// line carries none.
func cleanIgnoreLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return ""
	}

	var b strings.Builder
	escaped := false
	for _, r := range line {
		if escaped {
			// Only `\#` is an escape; any other backslash is literal.
			if r != '#' {
				b.WriteRune('\\')
			}
			b.WriteRune(r)
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '#':
			return strings.TrimRight(b.String(), " \t")
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteRune('\\')
	}
	return strings.TrimRight(b.String(), " \t")
}
