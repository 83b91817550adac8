package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/chainplanner/internal/application/planning/commands"
	"github.com/andrescamacho/chainplanner/internal/application/planning/queries"
)

// NewFacilitiesCommand creates the facilities command
func NewFacilitiesCommand() *cobra.Command {
	var (
		filter       string
		efficiencies []string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "facilities",
		Short: "List every facility (recipe) in the catalog",
		Long: `List every recipe in the catalog with its cycle, inputs, outputs and efficiency.

Examples:
  chainplanner facilities
  chainplanner facilities --filter mill
  chainplanner facilities --efficiency Mill=75`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseEfficiencies(efficiencies)
			if err != nil {
				return err
			}

			app, err := newApplication(context.Background())
			if err != nil {
				return err
			}
			defer app.Close()

			for _, name := range sortedKeys(parsed) {
				update := &commands.UpdateEfficiencyCommand{Recipe: name, Percentage: parsed[name]}
				if _, err := app.mediator.Send(app.ctx, update); err != nil {
					return err
				}
			}

			response, err := app.mediator.Send(app.ctx, &queries.ListFacilitiesQuery{Filter: filter})
			if err != nil {
				return err
			}
			facilities := response.(*queries.ListFacilitiesResponse).Facilities

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, facilities)
			}
			if len(facilities) == 0 {
				fmt.Fprintln(out, "No facilities found")
				return nil
			}

			for _, facility := range facilities {
				fmt.Fprintf(out, "%s (%ss", facility.Name, formatRate(facility.Duration))
				if facility.Efficiency != 100 {
					fmt.Fprintf(out, ", %s%%", formatRate(facility.Efficiency))
				}
				fmt.Fprint(out, ")")

				fmt.Fprintf(out, "  %s", formatQuantities(facility.Output, sortedKeys(facility.Output)))
				if len(facility.Input) > 0 {
					fmt.Fprintf(out, " ← %s", formatQuantities(facility.Input, sortedKeys(facility.Input)))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Only facilities whose name contains this text")
	cmd.Flags().StringArrayVarP(&efficiencies, "efficiency", "e", nil, "Recipe efficiency as RECIPE=PERCENT (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func sortedKeys(quantities map[string]float64) []string {
	keys := make([]string, 0, len(quantities))
	for key := range quantities {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
