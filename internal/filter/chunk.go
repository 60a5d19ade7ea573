package filter

import "strings"

// EstimateTokens approximates the LLM token count of a text as one
// token per four bytes. A fixed approximation, not a real tokenizer.
func EstimateTokens(s string) int {
	return len(s) / 4
}

// Pack splits text into line-aligned chunks of at most maxBytes bytes,
// counting one separator byte per line break. Lines are never split:
// a single line longer than maxBytes becomes its own oversized chunk.
// Chunks preserve original line order and exact line content; joining
// them with "\n" reconstructs the input.
//
// Text that already fits yields a single chunk equal to the input.
// Empty text yields no chunks.
func Pack(text string, maxBytes int) []string {
	if text == "" {
		return nil
	}

	var chunks []string
	var cur []string
	curLen := 0

	for _, line := range strings.Split(text, "\n") {
		add := len(line)
		if len(cur) > 0 {
			add++ // separator byte
		}
		if len(cur) > 0 && curLen+add > maxBytes {
			chunks = append(chunks, strings.Join(cur, "\n"))
			cur = nil
			curLen = 0
			add = len(line)
		}
		cur = append(cur, line)
		curLen += add
	}
	if len(cur) > 0 {
		chunks = append(chunks, strings.Join(cur, "\n"))
	}
	return chunks
}
