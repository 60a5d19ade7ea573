package cli

import (
	"github.com/aicommit/aicommit-go/internal/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	debugMode  bool
	configFile string
	modelName  string

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aicommit",
	Short: "AI-powered conventional commit messages",
	Long: `aicommit generates Conventional Commits messages for your staged
changes. It filters noise out of the diff (lockfiles, build output,
anything you put in .aicommitignore), fits what remains into the model
budget and asks the configured LLM to summarize it.

Use "aicommit [command] --help" for more information about a command.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
}

// GetVersionInfo returns version information
func GetVersionInfo() (string, string, string) {
	return version, gitCommit, buildTime
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: ~/.aicommit.yaml)")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "LLM model to use (overrides config)")
}
