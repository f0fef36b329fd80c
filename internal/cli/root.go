package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/railforge-dev/railforge/internal/branding"
	"github.com/railforge-dev/railforge/internal/config"
	"github.com/railforge-dev/railforge/internal/task"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagRoot    string
	flagDryRun  bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` mutates an existing project checkout: it adds dependencies,
settings, routes, process entries, and services so that running the same
command twice converges to the same files instead of duplicating content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", ".", "Project root to mutate")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Log intended writes without touching files")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print each mutation as it happens")
}

// taskContext builds the execution context every mutator receives.
func taskContext() *task.Context {
	return &task.Context{
		Root:    flagRoot,
		DryRun:  flagDryRun,
		Verbose: flagVerbose,
		Out:     os.Stderr,
	}
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
