package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/chainplanner/internal/application/planning/commands"
)

const (
	formatTree   = "tree"
	formatJSON   = "json"
	formatTotals = "totals"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var (
		rate         float64
		selections   []string
		efficiencies []string
		format       string
		noColor      bool
	)

	cmd := &cobra.Command{
		Use:   "plan <material>",
		Short: "Build a production tree for a material",
		Long: `Build the production tree for a material and size every tier.

Without --rate the root runs a single facility. Once the tree is built, each
--select applies a recipe everywhere the material it produces appears in the
tree, in the order given, and each --efficiency then sets a recipe's efficiency
percentage, recomputing the facilities that use it.

Output formats:
  tree    indented tree with facility counts and rates (default)
  totals  per-facility throughput demanded across the chain
  json    the whole plan as JSON

Examples:
  chainplanner plan bread --rate 4
  chainplanner plan bread --rate 4 --select Mill2
  chainplanner plan bread --rate 4 --efficiency Farm=50 --format totals`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatTree && format != formatJSON && format != formatTotals {
				return fmt.Errorf("unsupported format %q: expected tree, totals or json", format)
			}

			parsed, err := parseEfficiencies(efficiencies)
			if err != nil {
				return err
			}

			var ratePtr *float64
			if cmd.Flags().Changed("rate") {
				ratePtr = &rate
			}

			app, err := newApplication(context.Background())
			if err != nil {
				return err
			}
			defer app.Close()

			response, err := app.mediator.Send(app.ctx, &commands.BuildPlanCommand{
				Material: args[0],
				Rate:     ratePtr,
			})
			if err != nil {
				return err
			}
			plan := response.(*commands.BuildPlanResponse).View

			for _, name := range selections {
				response, err := app.mediator.Send(app.ctx, &commands.ApplySelectionCommand{Recipe: name})
				if err != nil {
					return err
				}
				plan = response.(*commands.ApplySelectionResponse).Plan
			}

			for _, name := range sortedKeys(parsed) {
				response, err := app.mediator.Send(app.ctx, &commands.UpdateEfficiencyCommand{
					Recipe:     name,
					Percentage: parsed[name],
				})
				if err != nil {
					return err
				}
				plan = response.(*commands.UpdateEfficiencyResponse).Plan
			}

			out := cmd.OutOrStdout()
			formatter := NewTreeFormatter(!noColor)
			switch format {
			case formatJSON:
				return writeJSON(out, plan)
			case formatTotals:
				fmt.Fprint(out, formatter.FormatTotals(plan.Totals))
			default:
				fmt.Fprint(out, formatter.FormatTree(&plan.Root))
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.FormatTreeSummary(plan))
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&rate, "rate", "r", 0, "Required output of the root per minute")
	cmd.Flags().StringArrayVarP(&selections, "select", "s", nil, "Recipe to apply across the tree (repeatable)")
	cmd.Flags().StringArrayVarP(&efficiencies, "efficiency", "e", nil, "Recipe efficiency as RECIPE=PERCENT (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", formatTree, "Output format: tree, totals or json")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
