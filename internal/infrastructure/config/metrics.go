package config

// MetricsConfig holds metrics collection configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Namespace prefixes every metric name
	Namespace string `mapstructure:"namespace" validate:"required"`

	// TextfilePath receives the Prometheus text exposition when the CLI exits,
	// for pickup by a node_exporter textfile collector. Empty disables the dump.
	TextfilePath string `mapstructure:"textfile_path"`
}
