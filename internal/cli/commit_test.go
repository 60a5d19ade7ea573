package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicommit/aicommit-go/internal/config"
	"github.com/aicommit/aicommit-go/internal/filter"
)

func TestBuildIgnoreSet_OverrideWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectIgnoreFile), []byte("*.proj\n"), 0644))

	set := buildIgnoreSet(dir, "*.a, *.b", []string{"*.cli"})
	assert.Equal(t, filter.PatternSet{"*.a", "*.b"}, set)
}

func TestBuildIgnoreSet_LayersInOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectIgnoreFile), []byte("*.proj # project\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, VCSIgnoreFile), []byte("*.vcs\n"), 0644))

	set := buildIgnoreSet(dir, "", []string{"*.cli"})
	assert.Equal(t, filter.PatternSet{"*.cli", "*.proj", "*.vcs"}, set)
}

func TestBuildIgnoreSet_DefaultsWhenNothingConfigured(t *testing.T) {
	dir := t.TempDir()

	set := buildIgnoreSet(dir, "", nil)
	assert.Equal(t, filter.NewPatternSet(filter.DefaultIgnorePatterns), set)
}

func TestBuildIgnoreSet_MissingFilesContributeNothing(t *testing.T) {
	dir := t.TempDir()

	set := buildIgnoreSet(dir, "", []string{"*.cli"})
	assert.Equal(t, filter.PatternSet{"*.cli"}, set)
}

func TestBuildIncludeSet_FlagWinsOverConfig(t *testing.T) {
	fc := &config.FilterConfig{IncludeExtensions: []string{".go"}}

	assert.Equal(t, filter.PatternSet{".py"}, buildIncludeSet(fc, []string{".py"}))
	assert.Equal(t, filter.PatternSet{".go"}, buildIncludeSet(fc, nil))
	assert.Empty(t, buildIncludeSet(&config.FilterConfig{}, nil))
}

func TestSelectPayload_FitsUnchanged(t *testing.T) {
	fc := &config.FilterConfig{ChunkSize: 1000, MaxInputTokens: 1000}

	payload, withheld := selectPayload("small diff", fc)
	assert.Equal(t, "small diff", payload)
	assert.Equal(t, 0, withheld)
}

func TestSelectPayload_OverByteBudgetSubmitsFirstChunk(t *testing.T) {
	fc := &config.FilterConfig{ChunkSize: 20, MaxInputTokens: 1000000}
	text := strings.Join([]string{
		strings.Repeat("a", 15),
		strings.Repeat("b", 15),
		strings.Repeat("c", 15),
	}, "\n")

	payload, withheld := selectPayload(text, fc)
	assert.Equal(t, strings.Repeat("a", 15), payload)
	assert.Equal(t, 2, withheld)
}

func TestSelectPayload_TokenBudgetTriggersChunking(t *testing.T) {
	// 100 bytes is within the byte budget but over the 10-token budget.
	fc := &config.FilterConfig{ChunkSize: 1000, MaxInputTokens: 10}
	text := strings.Repeat("x", 100)

	payload, withheld := selectPayload(text, fc)
	assert.Equal(t, text, payload, "text under the byte budget still fits in one chunk")
	assert.Equal(t, 0, withheld)
}
