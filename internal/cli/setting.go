package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/railforge-dev/railforge/internal/config"
	"github.com/railforge-dev/railforge/internal/inject"
)

var (
	settingEnvs    []string
	settingAllEnvs bool
)

var settingCmd = &cobra.Command{
	Use:   "setting <directive>",
	Short: "Inject a settings directive into the configuration files",
	Long: `Inject a configuration directive at the railforge settings anchor. Without
--env the directive goes into the global application settings exactly once;
with --env (or --all-envs) it is applied once per named environment file.`,
	Args: cobra.ExactArgs(1),
	RunE: runSetting,
}

func init() {
	settingCmd.Flags().StringSliceVar(&settingEnvs, "env", nil, "Environments to scope the directive to (repeatable)")
	settingCmd.Flags().BoolVar(&settingAllEnvs, "all-envs", false, "Apply to every configured environment")
	rootCmd.AddCommand(settingCmd)
}

func runSetting(cmd *cobra.Command, args []string) error {
	ctx := taskContext()
	directive := args[0]

	envs := settingEnvs
	if settingAllEnvs {
		envs = config.Environments()
	}

	scope := inject.GlobalScope()
	if len(envs) > 0 {
		scope = inject.EnvScope(envs)
	}

	if err := inject.Apply(ctx, scope, directive); err != nil {
		return fmt.Errorf("injecting setting: %w", err)
	}

	for _, rel := range scope.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "  ✓ setting: %s\n", rel)
	}
	return nil
}
