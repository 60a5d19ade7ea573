package summarize

import (
	"fmt"
	"strings"
)

// CommitInfo is the structured commit information produced by the LLM
// through the submit_commit tool call.
type CommitInfo struct {
	Type        string `json:"type"`             // feat, fix, docs, style, refactor, perf, test, chore, build, ci, revert
	Scope       string `json:"scope,omitempty"`  // Commit scope (optional)
	Description string `json:"description"`      // Subject line
	Body        string `json:"body,omitempty"`   // Detailed description (optional)
	Footer      string `json:"footer,omitempty"` // Breaking changes or issue references (optional)
}

// Title returns the formatted commit title (first line)
func (c *CommitInfo) Title() string {
	if c.Scope != "" {
		return fmt.Sprintf("%s(%s): %s", c.Type, c.Scope, c.Description)
	}
	return fmt.Sprintf("%s: %s", c.Type, c.Description)
}

// Message returns the complete formatted commit message
func (c *CommitInfo) Message() string {
	parts := []string{c.Title()}

	if c.Body != "" {
		parts = append(parts, "", c.Body)
	}
	if c.Footer != "" {
		parts = append(parts, "", c.Footer)
	}

	return strings.Join(parts, "\n")
}

var validCommitTypes = map[string]bool{
	"feat":     true,
	"fix":      true,
	"docs":     true,
	"style":    true,
	"refactor": true,
	"perf":     true,
	"test":     true,
	"chore":    true,
	"build":    true,
	"ci":       true,
	"revert":   true,
}

// Validate checks if the commit info is valid
func (c *CommitInfo) Validate() error {
	if c.Type == "" {
		return fmt.Errorf("commit type is required")
	}
	if !validCommitTypes[c.Type] {
		return fmt.Errorf("invalid commit type: %s", c.Type)
	}
	if c.Description == "" {
		return fmt.Errorf("commit description is required")
	}
	return nil
}

// parseTextResponse extracts commit info from a plain-text model
// response. Fallback for models that answer in text instead of a tool
// call.
func parseTextResponse(content string) (*CommitInfo, error) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty response from LLM")
	}

	title := strings.TrimSpace(lines[0])
	title = strings.TrimPrefix(title, "```")
	title = strings.TrimSuffix(title, "```")
	title = strings.TrimSpace(title)

	info := &CommitInfo{}

	if idx := strings.Index(title, ":"); idx > 0 {
		prefix := title[:idx]
		info.Description = strings.TrimSpace(title[idx+1:])

		if scopeStart := strings.Index(prefix, "("); scopeStart > 0 {
			if scopeEnd := strings.Index(prefix, ")"); scopeEnd > scopeStart {
				info.Type = prefix[:scopeStart]
				info.Scope = prefix[scopeStart+1 : scopeEnd]
			}
		} else {
			info.Type = prefix
		}
	} else {
		info.Type = "feat"
		info.Description = title
	}

	if len(lines) > 2 {
		var bodyLines []string
		for _, line := range lines[2:] {
			line = strings.TrimSpace(line)
			if line != "" {
				bodyLines = append(bodyLines, line)
			}
		}
		if len(bodyLines) > 0 {
			info.Body = strings.Join(bodyLines, "\n")
		}
	}

	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("failed to parse commit message: %w", err)
	}

	return info, nil
}
