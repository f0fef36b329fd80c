package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/railforge-dev/railforge/internal/mergedoc"
)

var (
	serviceFile    string
	serviceImage   string
	serviceCommand string
	servicePorts   []string
	serviceEnvVars []string
	serviceDeps    []string
)

var serviceCmd = &cobra.Command{
	Use:   "service <name>",
	Short: "Merge a service definition into the services document",
	Long: `Deep-merge a service definition into the services document, preserving
unrelated existing services. The document is created from the compose
skeleton when absent and validated against the services schema after the
merge.`,
	Args: cobra.ExactArgs(1),
	RunE: runService,
}

func init() {
	serviceCmd.Flags().StringVar(&serviceFile, "file", "services.yml", "Services document to merge into")
	serviceCmd.Flags().StringVar(&serviceImage, "image", "", "Container image (required)")
	serviceCmd.Flags().StringVar(&serviceCommand, "command", "", "Override command")
	serviceCmd.Flags().StringSliceVar(&servicePorts, "port", nil, "Port mapping, e.g. 5432:5432 (repeatable)")
	serviceCmd.Flags().StringSliceVar(&serviceEnvVars, "env-var", nil, "Environment entry KEY=VALUE (repeatable)")
	serviceCmd.Flags().StringSliceVar(&serviceDeps, "depends-on", nil, "Service dependency (repeatable)")
	_ = serviceCmd.MarkFlagRequired("image")
	rootCmd.AddCommand(serviceCmd)
}

// buildServiceFragment assembles the single-service fragment merged into
// the document.
func buildServiceFragment(name, image, command string, ports, envVars, deps []string) (map[string]interface{}, error) {
	service := map[string]interface{}{
		"image": image,
	}
	if command != "" {
		service["command"] = command
	}
	if len(ports) > 0 {
		list := make([]interface{}, len(ports))
		for i, p := range ports {
			list[i] = p
		}
		service["ports"] = list
	}
	if len(deps) > 0 {
		list := make([]interface{}, len(deps))
		for i, d := range deps {
			list[i] = d
		}
		service["depends_on"] = list
	}
	if len(envVars) > 0 {
		env := make(map[string]interface{}, len(envVars))
		for _, kv := range envVars {
			key, value, found := strings.Cut(kv, "=")
			if !found {
				return nil, fmt.Errorf("malformed --env-var %q, want KEY=VALUE", kv)
			}
			env[key] = value
		}
		service["environment"] = env
	}

	return map[string]interface{}{name: service}, nil
}

func runService(cmd *cobra.Command, args []string) error {
	ctx := taskContext()
	name := args[0]

	fragment, err := buildServiceFragment(name, serviceImage, serviceCommand, servicePorts, serviceEnvVars, serviceDeps)
	if err != nil {
		return err
	}

	if err := mergedoc.MergeServices(ctx, serviceFile, fragment); err != nil {
		return fmt.Errorf("merging service %s: %w", name, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  ✓ service: %s\n", name)

	// The merged document never exists on disk in dry-run mode.
	if ctx.DryRun {
		return nil
	}

	result, err := mergedoc.ValidateFile(ctx, serviceFile)
	if err != nil {
		return fmt.Errorf("validating %s: %w", serviceFile, err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "  ! %s\n", msg)
		}
	}
	return nil
}
