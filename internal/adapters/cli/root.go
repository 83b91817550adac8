package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath     string
	catalogPath    string
	catalogSource  string
	categoriesPath string
	verbose        bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chainplanner",
		Short: "Production chain planner - size every tier of a supply chain",
		Long: `chainplanner computes how many production facilities of each kind are needed
to produce a target material at a given rate, recursively down to raw materials,
and totals the throughput demanded of every facility in the chain.

Recipes come from a catalog file (YAML or JSON, optionally .zst compressed),
from game data (buildings.json), or from a catalog imported into the database.

Examples:
  chainplanner plan bread --rate 4
  chainplanner plan bread --rate 4 --select Mill2 --efficiency Farm=80
  chainplanner plan steel --format totals
  chainplanner materials --choices
  chainplanner catalog import configs/catalog.yaml --name default`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "",
		"Catalog file to plan with (overrides catalog.path)")
	rootCmd.PersistentFlags().StringVar(&catalogSource, "source", "",
		"Catalog source: file, gamedata or database (overrides catalog.source)")
	rootCmd.PersistentFlags().StringVar(&categoriesPath, "categories", "",
		"constructionCategories.json used with --source gamedata")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewFacilitiesCommand())
	rootCmd.AddCommand(NewMaterialsCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
