package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/chainplanner/internal/adapters/catalog"
	"github.com/andrescamacho/chainplanner/internal/adapters/persistence"
	"github.com/andrescamacho/chainplanner/internal/application/logging"
	"github.com/andrescamacho/chainplanner/internal/domain/production"
	"github.com/andrescamacho/chainplanner/internal/infrastructure/database"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate, import and export recipe catalogs",
		Long: `Validate, import and export recipe catalogs.

Catalog files are YAML or JSON documents listing recipes; a .zst suffix marks a
zstd-compressed file. Game data (buildings.json with an optional
constructionCategories.json) is accepted with --gamedata.

Imported catalogs are stored in the configured database under a name and can be
planned with --source database (or catalog.source: database).

Examples:
  chainplanner catalog validate configs/catalog.yaml
  chainplanner catalog validate data/buildings.json --gamedata --categories data/constructionCategories.json
  chainplanner catalog import configs/catalog.yaml --name default
  chainplanner catalog show
  chainplanner catalog show default
  chainplanner catalog export recipes.json.zst`,
	}

	cmd.AddCommand(newCatalogValidateCommand())
	cmd.AddCommand(newCatalogImportCommand())
	cmd.AddCommand(newCatalogShowCommand())
	cmd.AddCommand(newCatalogExportCommand())

	return cmd
}

// readCatalog loads a catalog file or game data file given on the command line
func readCatalog(path string, gameData bool, categories string) (*catalog.Bundle, error) {
	if gameData {
		return catalog.LoadGameData(path, categories)
	}
	return catalog.NewLoader().LoadFile(path)
}

// newCatalogValidateCommand creates the catalog validate subcommand
func newCatalogValidateCommand() *cobra.Command {
	var gameData bool

	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Check a catalog for schema errors, duplicate recipes and cycles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := readCatalog(args[0], gameData, categoriesPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Catalog is valid")
			printBundleSummary(cmd, bundle)
			return nil
		},
	}

	cmd.Flags().BoolVar(&gameData, "gamedata", false, "Treat the file as game data (buildings.json)")

	return cmd
}

// newCatalogImportCommand creates the catalog import subcommand
func newCatalogImportCommand() *cobra.Command {
	var (
		name     string
		gameData bool
	)

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Validate a catalog and store it in the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, logger, closer, err := newLogger(context.Background(), cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			bundle, err := readCatalog(args[0], gameData, categoriesPath)
			if err != nil {
				return err
			}

			if name == "" {
				name = cfg.Catalog.Name
			}

			db, err := openDatabase(&cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close(db)

			repo := persistence.NewGormCatalogRepository(db)
			if err := repo.Save(ctx, name, bundle.Source, bundle.Digest, bundle.Catalog.Recipes()); err != nil {
				return err
			}

			logger.Log(logging.LevelInfo, "catalog imported", map[string]interface{}{
				"name":    name,
				"source":  bundle.Source,
				"recipes": bundle.Catalog.Count(),
			})

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported catalog %s\n", name)
			printBundleSummary(cmd, bundle)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name to store the catalog under (default: catalog.name)")
	cmd.Flags().BoolVar(&gameData, "gamedata", false, "Treat the file as game data (buildings.json)")

	return cmd
}

// newCatalogShowCommand creates the catalog show subcommand
func newCatalogShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "List stored catalogs, or the recipes of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := openDatabase(&cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx := context.Background()
			repo := persistence.NewGormCatalogRepository(db)
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				infos, err := repo.List(ctx)
				if err != nil {
					return err
				}
				if len(infos) == 0 {
					fmt.Fprintln(out, "No catalogs stored")
					return nil
				}
				for _, info := range infos {
					fmt.Fprintf(out, "%s  %d recipes  %s  %s\n",
						info.Name, info.RecipeCount, shortDigest(info.Digest), info.ImportedAt.Format("2006-01-02 15:04:05"))
				}
				return nil
			}

			recipes, info, err := repo.Load(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Catalog %s (%d recipes, digest %s)\n", info.Name, info.RecipeCount, shortDigest(info.Digest))
			if info.Source != "" {
				fmt.Fprintf(out, "Imported from %s\n", info.Source)
			}
			for _, recipe := range recipes {
				fmt.Fprintf(out, "  %s\n", describeRecipe(recipe))
			}
			return nil
		},
	}
}

// newCatalogExportCommand creates the catalog export subcommand
func newCatalogExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <output>",
		Short: "Write the configured catalog to a YAML or JSON file",
		Long: `Write the catalog from the configured source to a file. The output format
follows the extension (.yaml, .yml, .json), and a .zst suffix compresses it.

Examples:
  chainplanner catalog export recipes.yaml --source gamedata --catalog data/buildings.json
  chainplanner catalog export backup.json.zst --source database`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			bundle, err := loadCatalog(context.Background(), cfg)
			if err != nil {
				return err
			}

			if err := catalog.WriteFile(args[0], bundle.Catalog.Recipes()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d recipes to %s\n", bundle.Catalog.Count(), args[0])
			return nil
		},
	}
}

func printBundleSummary(cmd *cobra.Command, bundle *catalog.Bundle) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Source:     %s\n", bundle.Source)
	fmt.Fprintf(out, "  Recipes:    %d\n", bundle.Catalog.Count())
	fmt.Fprintf(out, "  Materials:  %d\n", len(bundle.Catalog.Materials()))
	fmt.Fprintf(out, "  Digest:     %s\n", bundle.Digest)
}

func describeRecipe(recipe *production.Recipe) string {
	outputs := make([]string, 0, len(recipe.Output))
	for _, material := range recipe.OutputMaterials() {
		outputs = append(outputs, fmt.Sprintf("%s:%s", material, formatRate(recipe.Output[material])))
	}
	inputs := make([]string, 0, len(recipe.Input))
	for _, material := range recipe.InputMaterials() {
		inputs = append(inputs, fmt.Sprintf("%s:%s", material, formatRate(recipe.Input[material])))
	}

	description := fmt.Sprintf("%s (%ss) %s", recipe.Name, formatRate(recipe.Duration), strings.Join(outputs, ", "))
	if len(inputs) > 0 {
		description += " ← " + strings.Join(inputs, ", ")
	}
	return description
}

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
