package config

// CleanupConfig holds settings for the scheduled cleanup job
type CleanupConfig struct {
	Enabled bool `env:"CLEANUP_ENABLED" env-default:"true"`
	// Interval between runs, as a Go duration string
	Interval string `env:"CLEANUP_INTERVAL" env-default:"24h"`
	// ReportTo is the operator address for run reports; empty disables them
	ReportTo string `env:"CLEANUP_REPORT_TO" env-default:""`
}
