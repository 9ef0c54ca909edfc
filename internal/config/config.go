// Package config provides YAML-based configuration loading for the AI
// adapter's runtime tuning, following the same search order the arcade
// used for its per-game config files.
package config

// AdapterConfig is the YAML-shaped tuning overlay for the adapter.
// Fields left zero mean "use the built-in default"; environment
// variables (see internal/adapter.LoadFromEnv) are layered on top and
// always win.
type AdapterConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	ObsHz       int    `yaml:"obs_hz"`
	MaxPending  int    `yaml:"max_pending"`
	LogPath     string `yaml:"log_path"`
	LogEveryN   int    `yaml:"log_every_n"`
	LogMaxLines int    `yaml:"log_max_lines"`
}
