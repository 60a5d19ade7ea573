package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aicommit/aicommit-go/internal/config"
	"github.com/aicommit/aicommit-go/internal/filter"
	"github.com/aicommit/aicommit-go/internal/git"
	"github.com/aicommit/aicommit-go/internal/llm"
	"github.com/aicommit/aicommit-go/internal/log"
	"github.com/aicommit/aicommit-go/internal/summarize"
	"github.com/aicommit/aicommit-go/internal/ui"
	"github.com/aicommit/aicommit-go/pkg/lang"
)

const (
	// ProjectIgnoreFile is the project-specific ignore file.
	ProjectIgnoreFile = ".aicommitignore"
	// VCSIgnoreFile is the version-control-standard ignore file.
	VCSIgnoreFile = ".gitignore"
)

var (
	commitContext     string
	commitLanguage    string
	commitAutoYes     bool
	commitPush        bool
	commitIgnore      []string
	commitIncludeExts []string
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Generate and create a commit",
	Long: `Generate a commit message using AI based on staged changes.

This command will:
1. Filter irrelevant files out of the staged diff (lockfiles, build
   output, patterns from .aicommitignore/.gitignore)
2. Generate a commit message following Conventional Commits
3. Ask for confirmation before committing

Examples:
  aicommit commit
  aicommit commit -c "fixes the auth token refresh race"
  aicommit commit --ignore "*.pb.go" --ignore "testdata/*"
  aicommit commit --include-ext .go --include-ext .md
  aicommit commit --language ja -m deepseek --push`,
	RunE: runCommit,
}

func init() {
	commitCmd.Flags().StringVarP(&commitContext, "context", "c", "", "Additional context to help AI generate better message")
	commitCmd.Flags().StringVarP(&commitLanguage, "language", "l", "", "Output language (en, zh, ja, etc.)")
	commitCmd.Flags().BoolVarP(&commitAutoYes, "yes", "y", false, "Auto-confirm the commit without prompting")
	commitCmd.Flags().BoolVarP(&commitPush, "push", "p", false, "Push after a successful commit")
	commitCmd.Flags().StringArrayVar(&commitIgnore, "ignore", nil, "Extra ignore pattern (repeatable)")
	commitCmd.Flags().StringArrayVar(&commitIncludeExts, "include-ext", nil, "Only summarize files with this extension/pattern (repeatable)")
	rootCmd.AddCommand(commitCmd)
}

// buildIgnoreSet assembles the effective ignore PatternSet for a
// working directory. The config override wins outright; otherwise CLI
// patterns, the project ignore file and the VCS ignore file are layered
// over the built-in defaults.
func buildIgnoreSet(workDir, overrideList string, cliPatterns []string) filter.PatternSet {
	layers := filter.Layers{
		Override:    filter.SplitList(overrideList),
		CLI:         cliPatterns,
		ProjectFile: filter.ReadIgnoreFile(filepath.Join(workDir, ProjectIgnoreFile)),
		VCSFile:     filter.ReadIgnoreFile(filepath.Join(workDir, VCSIgnoreFile)),
		Defaults:    filter.DefaultIgnorePatterns,
	}
	return layers.Resolve()
}

// buildIncludeSet assembles the include-extension set. CLI flags win
// over the config list.
func buildIncludeSet(cfg *config.FilterConfig, cliExts []string) filter.PatternSet {
	if len(cliExts) > 0 {
		return filter.NewPatternSet(cliExts)
	}
	return filter.NewPatternSet(cfg.IncludeExtensions)
}

// selectPayload applies the chunking trigger policy: text within both
// the byte and token budgets is submitted whole; anything larger is
// packed and only the first chunk is submitted. Returns the payload
// and the number of chunks withheld.
func selectPayload(filtered string, fc *config.FilterConfig) (string, int) {
	if len(filtered) <= fc.ChunkSize && filter.EstimateTokens(filtered) <= fc.MaxInputTokens {
		return filtered, 0
	}
	chunks := filter.Pack(filtered, fc.ChunkSize)
	if len(chunks) == 0 {
		return "", 0
	}
	return chunks[0], len(chunks) - 1
}

func runCommit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	startTime := time.Now()

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.DebugConfig("Configuration", cfg)

	modelConfig, err := cfg.GetModel(modelName)
	if err != nil {
		return fmt.Errorf("failed to get model config: %w", err)
	}

	log.Debug("Using model: %s (provider: %s)", modelConfig.Model, modelConfig.Provider)

	language := cfg.GetLanguage(commitLanguage)
	log.Debug("Using language: %s (%s)", language, lang.ParseLanguage(language).DisplayName())

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	gitExec := git.NewExecutor(cwd)
	printer := ui.NewPrinter(os.Stdout, ui.WithVerbose(debugMode))

	// Step 1: staged diff, offering to stage everything when empty.
	_ = printer.PrintStep(1, "Reading staged changes...")
	diff, err := gitExec.DiffCached(ctx)
	if err != nil {
		return fmt.Errorf("failed to get staged changes: %w", err)
	}

	if diff == "" {
		stage, err := ui.ConfirmWithDefault("No staged changes found. Stage all changes?", false, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		if !stage {
			fmt.Println("Nothing to commit.")
			return nil
		}
		if err := gitExec.StageAll(ctx); err != nil {
			return fmt.Errorf("failed to stage changes: %w", err)
		}
		diff, err = gitExec.DiffCached(ctx)
		if err != nil {
			return fmt.Errorf("failed to get staged changes: %w", err)
		}
		if diff == "" {
			fmt.Println("Nothing to commit.")
			return nil
		}
	}

	// Step 2: filter the diff down to relevant file blocks.
	_ = printer.PrintStep(2, "Filtering diff...")
	fc := cfg.GetFilterConfig()

	ignoreSet := buildIgnoreSet(cwd, fc.IgnorePatterns, commitIgnore)
	includeSet := buildIncludeSet(fc, commitIncludeExts)
	log.Debug("Ignore patterns: %d, include patterns: %d", len(ignoreSet), len(includeSet))

	splitter := filter.NewSplitter(filter.NewClassifier(ignoreSet, includeSet))
	filtered := splitter.Filter(diff)
	if filtered == "" {
		fmt.Println("No relevant changes after filtering.")
		return nil
	}
	log.Debug("Filtered diff: %d bytes (from %d)", len(filtered), len(diff))

	payload, withheld := selectPayload(filtered, fc)
	if withheld > 0 {
		log.Warn("Diff exceeds the input budget; summarizing the first %d bytes only (%d more chunk(s) not sent)",
			len(payload), withheld)
	}

	status, err := gitExec.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get git status: %w", err)
	}

	// Step 3: ask the model.
	_ = printer.PrintStep(3, "Generating commit message...")

	factory := llm.NewProviderFactory()
	provider, err := factory.Create(*modelConfig)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	retryCfgPtr := cfg.GetRetryConfig()
	retryCfg := llm.RetryConfig{
		Enabled:     retryCfgPtr.Enabled,
		MaxAttempts: retryCfgPtr.MaxAttempts,
		BackoffBase: retryCfgPtr.BackoffBase,
		BackoffMax:  retryCfgPtr.BackoffMax,
	}

	summarizer, err := summarize.NewSummarizer(summarize.Options{
		Provider:    provider,
		Printer:     printer,
		RetryConfig: retryCfg,
	})
	if err != nil {
		return fmt.Errorf("failed to create summarizer: %w", err)
	}

	response, err := summarizer.Generate(ctx, summarize.Request{
		Diff:     payload,
		Status:   status,
		Language: language,
		Context:  commitContext,
	})
	if err != nil {
		return fmt.Errorf("failed to generate commit message: %w", err)
	}
	if response == nil || response.CommitInfo == nil {
		return fmt.Errorf("no commit message generated")
	}
	log.DebugDuration("commit message generation", time.Since(startTime))

	commitMessage := response.CommitInfo.Message()

	if err := ui.ShowCommitMessage(commitMessage, os.Stdout); err != nil {
		return err
	}

	_ = printer.PrintStats(&ui.ExecutionStats{
		StartTime:        startTime,
		EndTime:          time.Now(),
		PromptTokens:     response.PromptTokens,
		CompletionTokens: response.CompletionTokens,
		TotalTokens:      response.TotalTokens,
	})

	if !commitAutoYes {
		confirmed, err := ui.ConfirmWithDefault("\nDo you want to commit with this message?", true, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Commit cancelled.")
			return nil
		}
	}

	if err := gitExec.Commit(ctx, commitMessage); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	fmt.Println("\n✅ Commit created successfully!")

	if commitPush {
		branch, err := gitExec.CurrentBranch(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve current branch: %w", err)
		}
		_ = printer.PrintStep(4, fmt.Sprintf("Pushing %s...", branch))
		if err := gitExec.Push(ctx); err != nil {
			return fmt.Errorf("failed to push: %w", err)
		}
		fmt.Println("✅ Pushed.")
	}

	return nil
}
