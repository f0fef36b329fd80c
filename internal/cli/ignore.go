package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/railforge-dev/railforge/internal/linelist"
)

var ignoreCmd = &cobra.Command{
	Use:   "ignore <pattern>...",
	Short: "Append patterns to the ignore list",
	Long: `Append patterns to the project's .gitignore, creating it if absent.
Patterns already listed are skipped, so repeated runs converge.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIgnore,
}

func init() {
	rootCmd.AddCommand(ignoreCmd)
}

func runIgnore(cmd *cobra.Command, args []string) error {
	ctx := taskContext()

	for _, pattern := range args {
		if err := linelist.AppendUnique(ctx, ".gitignore", pattern); err != nil {
			return fmt.Errorf("updating .gitignore: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  ✓ ignore: %s\n", pattern)
	}
	return nil
}
