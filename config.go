package rowguard

// Config holds configuration for the rowguard engine.
type Config struct {
	// RecordDecisions enables writing an audit entry for every check when a
	// decision log store is configured. Defaults to true.
	RecordDecisions *bool `json:"record_decisions,omitempty"`

	// DefaultGrant is the value Grants lookups return for permissions that
	// were never mentioned in a resource's ACL. Defaults to false; leaving
	// it false keeps the engine fail-closed end to end.
	DefaultGrant bool `json:"default_grant,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	t := true
	return Config{
		RecordDecisions: &t,
	}
}

func (c Config) recordEnabled() bool { return c.RecordDecisions == nil || *c.RecordDecisions }
