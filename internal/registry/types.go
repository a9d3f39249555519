package registry

// Config is the top-level YAML capability registry document.
type Config struct {
	// Bridge describes registry-wide settings.
	Bridge BridgeConfig `yaml:"bridge"`
	// Capabilities lists every capability the worker runtime exposes.
	Capabilities []CapabilityConfig `yaml:"capabilities"`
}

// BridgeConfig defines registry-wide settings.
type BridgeConfig struct {
	// Service is the bridge service name reported by the liveness probe.
	Service string `yaml:"service"`
	// Version is the registry contract version.
	Version string `yaml:"version"`
	// Namespace is the caller-facing prefix stripped during resolution.
	Namespace string `yaml:"namespace"`
}

// CapabilityConfig declares one canonical capability.
type CapabilityConfig struct {
	// Name is the canonical capability name known to the worker runtime.
	Name string `yaml:"name"`
	// Title is the human-friendly capability title.
	Title string `yaml:"title"`
	// Description explains the capability for MCP clients.
	Description string `yaml:"description"`
	// Schema is the parameter-schema identifier the worker validates with.
	Schema string `yaml:"schema"`
	// Aliases lists caller-facing surface forms accepted for this capability.
	Aliases []string `yaml:"aliases"`
	// Timeout overrides the default wall-clock budget for this capability.
	Timeout string `yaml:"timeout"`
	// ReadOnly hints that the capability does not mutate mailbox state.
	ReadOnly bool `yaml:"read_only"`
	// Idempotent hints that repeated calls have no additional effect.
	Idempotent bool `yaml:"idempotent"`
	// InputSchema is an optional JSON Schema validated before dispatch.
	InputSchema map[string]any `yaml:"input_schema"`
}
