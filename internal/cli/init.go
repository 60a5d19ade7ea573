package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const defaultConfigTemplate = `# aicommit configuration file

# Default language for generated messages (en, zh, ja, etc.)
language: en

# Default model to use (must match a key in the models section)
default_model: deepseek

# LLM model configurations
models:
  deepseek:
    provider: deepseek
    api_key: ${DEEPSEEK_API_KEY}
    model: deepseek-chat

  # openai:
  #   provider: openai
  #   api_key: ${OPENAI_API_KEY}
  #   model: gpt-4o

  # ollama:
  #   provider: ollama
  #   model: llama3.2
  #   base_url: http://localhost:11434/v1

  # gemini:
  #   provider: gemini
  #   api_key: ${GOOGLE_API_KEY}
  #   model: gemini-2.0-flash-exp

  # grok:
  #   provider: grok
  #   api_key: ${XAI_API_KEY}
  #   model: grok-beta

# Diff filtering and chunking
filter:
  # Comma-separated pattern list. When set, it replaces every other
  # ignore source (CLI flags, .aicommitignore, .gitignore, defaults).
  # ignore_patterns: "*.lock,dist/*"

  # Only summarize files matching these extensions/patterns.
  # include_extensions: [".go", ".md"]

  # Maximum bytes per chunk sent to the model.
  chunk_size: 100000

  # Estimated-token budget before the diff gets chunked.
  max_input_tokens: 32000

# Retry behavior for transient API failures
retry:
  enabled: true
  max_attempts: 3
  backoff_base: 1.0
  backoff_max: 8.0
`

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize aicommit configuration",
	Long: `Create a default configuration file (~/.aicommit.yaml).

This command creates a template configuration file with example settings
for the supported LLM providers. Edit the file to add your API keys and
customize the diff filter.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		configPath := filepath.Join(homeDir, ".aicommit.yaml")

		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", configPath)
		}

		if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0600); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Printf("✅ Configuration file created: %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Edit the config file and add your API keys")
		fmt.Println("  2. Set environment variables for sensitive keys (recommended)")
		fmt.Println("  3. Run 'aicommit commit' to generate a commit message")

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
