package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/railforge-dev/railforge/internal/procfile"
)

var procEnv string

var procCmd = &cobra.Command{
	Use:   "proc",
	Short: "Manage process manifest entries",
}

var procSetCmd = &cobra.Command{
	Use:   "set <name> <command>...",
	Short: "Add or replace a process entry",
	Long: `Write a "name: command" entry into the process manifest, replacing an
existing entry for the same name in place. The manifest is created on
first use. With --env the entry goes into Procfile.<env>.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runProcSet,
}

var procRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a process entry and its comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcRemove,
}

func init() {
	procCmd.PersistentFlags().StringVar(&procEnv, "env", "", "Environment suffix for the manifest (Procfile.<env>)")
	procCmd.AddCommand(procSetCmd)
	procCmd.AddCommand(procRemoveCmd)
	rootCmd.AddCommand(procCmd)
}

func runProcSet(cmd *cobra.Command, args []string) error {
	ctx := taskContext()
	rel := procfile.FileForEnv("Procfile", procEnv)

	name := args[0]
	command := strings.Join(args[1:], " ")

	if err := procfile.Upsert(ctx, rel, name, command); err != nil {
		return fmt.Errorf("updating %s: %w", rel, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  ✓ %s: %s\n", rel, name)
	return nil
}

func runProcRemove(cmd *cobra.Command, args []string) error {
	ctx := taskContext()
	rel := procfile.FileForEnv("Procfile", procEnv)

	if err := procfile.Remove(ctx, rel, args[0]); err != nil {
		return fmt.Errorf("updating %s: %w", rel, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  ✓ %s: removed %s\n", rel, args[0])
	return nil
}
