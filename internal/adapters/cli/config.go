package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/chainplanner/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect chainplanner configuration settings.

Configuration is loaded from multiple sources with priority:
1. Command line flags (--catalog, --source, --categories, --verbose)
2. Environment variables (CP_* prefix, e.g. CP_CATALOG_PATH)
3. Config file (config.yaml)
4. Default values

Examples:
  chainplanner config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			fmt.Fprintln(out, "chainplanner Configuration")
			fmt.Fprintln(out, "==========================")

			fmt.Fprintln(out, "Catalog:")
			fmt.Fprintf(out, "  Source:           %s\n", cfg.Catalog.Source)
			if cfg.Catalog.Source == config.CatalogSourceDatabase {
				fmt.Fprintf(out, "  Name:             %s\n", cfg.Catalog.Name)
			} else {
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Catalog.Path)
			}
			if cfg.Catalog.CategoriesPath != "" {
				fmt.Fprintf(out, "  Categories:       %s\n", cfg.Catalog.CategoriesPath)
			}

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
				fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)
			if cfg.Logging.FilePath != "" {
				fmt.Fprintf(out, "  File:             %s\n", cfg.Logging.FilePath)
			}

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Namespace:        %s\n", cfg.Metrics.Namespace)
			if cfg.Metrics.TextfilePath != "" {
				fmt.Fprintf(out, "  Textfile:         %s\n", cfg.Metrics.TextfilePath)
			}

			return nil
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.User == nil {
		return raw
	}
	if _, hasPassword := parsed.User.Password(); !hasPassword {
		return raw
	}
	parsed.User = url.UserPassword(parsed.User.Username(), "xxxxx")
	return parsed.String()
}
