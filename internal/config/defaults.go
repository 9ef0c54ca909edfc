package config

import _ "embed"

//go:embed defaults/adapter.yaml
var defaultAdapterYAML []byte

// DefaultAdapterConfig returns the built-in fallback, used if the
// embedded YAML somehow fails to parse.
func DefaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		Host:       "127.0.0.1",
		Port:       7777,
		ObsHz:      20,
		MaxPending: 10,
		LogEveryN:  1,
	}
}

// GetDefaultYAML returns the embedded default adapter configuration.
func GetDefaultYAML() []byte {
	return defaultAdapterYAML
}
