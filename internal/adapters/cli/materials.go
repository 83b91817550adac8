package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/chainplanner/internal/application/planning/queries"
)

// NewMaterialsCommand creates the materials command
func NewMaterialsCommand() *cobra.Command {
	var (
		choicesOnly bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List producible materials and their recipes",
		Long: `List every material the catalog can produce, with the recipes producing it.
The first recipe listed is the one a new tree uses by default.

With --choices, only materials with more than one recipe are listed; these are
the materials a --select on 'plan' can change.

Examples:
  chainplanner materials
  chainplanner materials --choices`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(context.Background())
			if err != nil {
				return err
			}
			defer app.Close()

			response, err := app.mediator.Send(app.ctx, &queries.ListMaterialsQuery{ChoicesOnly: choicesOnly})
			if err != nil {
				return err
			}
			materials := response.(*queries.ListMaterialsResponse).Materials

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, materials)
			}
			if len(materials) == 0 {
				fmt.Fprintln(out, "No materials found")
				return nil
			}
			for _, material := range materials {
				fmt.Fprintf(out, "%s: %s\n", material.Material, strings.Join(material.Recipes, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&choicesOnly, "choices", false, "Only materials with alternative recipes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
