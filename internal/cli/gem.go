package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/railforge-dev/railforge/internal/gemfile"
	"github.com/railforge-dev/railforge/internal/installer"
)

var (
	gemRequirement string
	gemGroups      []string
	gemInstall     bool
)

var gemCmd = &cobra.Command{
	Use:   "gem <name>...",
	Short: "Add dependency directives to the Gemfile",
	Long: `Add one or more gems to the project's Gemfile. An existing declaration —
including a commented-out placeholder — is rewritten in place, so re-running
the command never duplicates a gem.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGem,
}

func init() {
	gemCmd.Flags().StringVar(&gemRequirement, "requirement", "", "Version requirement, e.g. \"~> 7.1\" (single gem only)")
	gemCmd.Flags().StringSliceVar(&gemGroups, "group", nil, "Group symbols the gems belong to (repeatable)")
	gemCmd.Flags().BoolVar(&gemInstall, "install", false, "Run bundle install after updating the Gemfile")
	rootCmd.AddCommand(gemCmd)
}

func runGem(cmd *cobra.Command, args []string) error {
	if gemRequirement != "" && len(args) > 1 {
		return fmt.Errorf("--requirement applies to a single gem, got %d", len(args))
	}

	ctx := taskContext()
	m := gemfile.NewManager(ctx, "Gemfile")

	for _, name := range args {
		g := gemfile.Gem{Name: name, Version: gemRequirement, Groups: gemGroups}
		if err := m.Add(g); err != nil {
			return fmt.Errorf("adding gem %s: %w", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  ✓ gem: %s\n", name)
	}

	if gemInstall {
		if err := installer.CheckVersion(ctx, "bundle", "2.0.0"); err != nil {
			return err
		}
		res := installer.Bundle(ctx)
		if !res.OK {
			fmt.Fprint(cmd.ErrOrStderr(), res.Output)
			return fmt.Errorf("bundle install failed")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "  ✓ bundle install")
	}

	return nil
}
