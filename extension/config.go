package extension

// Config holds the rowguard extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.rowguard" or "rowguard" keys).
type Config struct {
	// DisableRoutes prevents HTTP route registration.
	DisableRoutes bool `json:"disable_routes" mapstructure:"disable_routes" yaml:"disable_routes"`

	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// BasePath prefixes all rowguard routes, e.g. "/authz". Empty mounts
	// them at the root.
	BasePath string `json:"base_path" mapstructure:"base_path" yaml:"base_path"`

	// RecordDecisions toggles writing an audit entry for every check when a
	// store is configured. Nil leaves the engine default (enabled) in place.
	RecordDecisions *bool `json:"record_decisions" mapstructure:"record_decisions" yaml:"record_decisions"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{}
}
