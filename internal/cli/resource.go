package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/railforge-dev/railforge/internal/routes"
	"github.com/railforge-dev/railforge/internal/scaffold"
)

var (
	resourcePlural     string
	resourceRoutes     []string
	resourceRestricted bool
	resourceForce      bool
	resourceSkipFiles  bool
)

var resourceCmd = &cobra.Command{
	Use:   "resource <name>",
	Short: "Scaffold a resource: files plus its routing concern",
	Long: `Generate the controller, policy, and view stubs for a resource and upsert
its routing concern block. Re-running replaces the prior concern block in
full, so repeated scaffolds never accumulate duplicate routes.`,
	Args: cobra.ExactArgs(1),
	RunE: runResource,
}

func init() {
	resourceCmd.Flags().StringVar(&resourcePlural, "resource", "", "Plural collection name (default <name>s)")
	resourceCmd.Flags().StringSliceVar(&resourceRoutes, "route", nil, "Route line nested in the concern block (repeatable)")
	resourceCmd.Flags().BoolVar(&resourceRestricted, "restricted", false, "Skip the public-listing registration")
	resourceCmd.Flags().BoolVar(&resourceForce, "force", false, "Overwrite existing generated files")
	resourceCmd.Flags().BoolVar(&resourceSkipFiles, "skip-files", false, "Only update routes, generate no files")
	rootCmd.AddCommand(resourceCmd)
}

func runResource(cmd *cobra.Command, args []string) error {
	ctx := taskContext()
	name := args[0]

	data := scaffold.NewData(name, resourcePlural)

	if !resourceSkipFiles {
		result, err := scaffold.Generate(ctx, data, resourceForce)
		if err != nil {
			return fmt.Errorf("generating files for %s: %w", name, err)
		}
		for _, rel := range result.Created {
			fmt.Fprintf(cmd.OutOrStdout(), "  ✓ create: %s\n", rel)
		}
		for _, rel := range result.Skipped {
			fmt.Fprintf(cmd.OutOrStdout(), "  - exists: %s\n", rel)
		}
	}

	concern := routes.Concern{
		Name:        name,
		Resource:    data.Resource,
		SubConcerns: resourceRoutes,
		Restricted:  resourceRestricted,
	}
	if err := routes.Upsert(ctx, concern); err != nil {
		return fmt.Errorf("updating routes for %s: %w", name, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  ✓ routes: %s\n", routes.File)

	return nil
}
