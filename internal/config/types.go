// Package config loads sqlscout configuration from defaults, an optional
// YAML file, SQLSCOUT_ environment variables, and CLI flags, in rising
// precedence.
package config

// Defaults.
const (
	DefaultOutDir = "query_outputs"
	DefaultFormat = "text"
	DefaultJobs   = 4
)

// Config is the resolved runtime configuration.
type Config struct {
	OutDir  string `koanf:"out_dir"`
	Format  string `koanf:"format"`
	Jobs    int    `koanf:"jobs"`
	Export  bool   `koanf:"export"`
	Verbose bool   `koanf:"verbose"`
}
