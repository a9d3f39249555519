package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config stores environment-driven settings for the bridge.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `env:"GMAIL_BRIDGE_LISTEN" envDefault:":3002"`
	// RegistryPath points at a capability registry YAML file; empty selects
	// the embedded default registry.
	RegistryPath string `env:"GMAIL_BRIDGE_REGISTRY"`
	// Transport selects "http" (bridge endpoints) or "stdio" (MCP facade).
	Transport string `env:"GMAIL_BRIDGE_TRANSPORT" envDefault:"http"`
	// LogLevel sets the logger level.
	LogLevel string `env:"GMAIL_BRIDGE_LOG_LEVEL" envDefault:"info"`

	// WorkerCommand is the executable used to reach the worker runtime.
	WorkerCommand string `env:"GMAIL_BRIDGE_WORKER_COMMAND" envDefault:"docker"`
	// WorkerArgs are the fixed argv entries appended after WorkerCommand.
	WorkerArgs []string `env:"GMAIL_BRIDGE_WORKER_ARGS" envSeparator:" " envDefault:"exec -i gmail-mcp python /app/tool_runner.py"`
	// WorkerContainer names the worker container for the startup preflight.
	WorkerContainer string `env:"GMAIL_BRIDGE_WORKER_CONTAINER" envDefault:"gmail-mcp"`
	// TokenEnv names the environment variable holding the Gmail access token
	// passed through to the worker's credential accessor.
	TokenEnv string `env:"GMAIL_BRIDGE_TOKEN_ENV" envDefault:"GMAIL_ACCESS_TOKEN"`

	// ToolTimeout is the default wall-clock budget per invocation.
	ToolTimeout time.Duration `env:"GMAIL_BRIDGE_TOOL_TIMEOUT" envDefault:"5m"`
	// MaxOutputBytes caps buffered stdout/stderr per invocation.
	MaxOutputBytes int64 `env:"GMAIL_BRIDGE_MAX_OUTPUT_BYTES" envDefault:"10485760"`
	// MaxConcurrent bounds concurrent worker subprocesses; 0 disables.
	MaxConcurrent int64 `env:"GMAIL_BRIDGE_MAX_CONCURRENT" envDefault:"8"`
	// RatePerSecond limits dispatch starts per second; 0 disables.
	RatePerSecond float64 `env:"GMAIL_BRIDGE_RATE_PER_SECOND" envDefault:"0"`
	// RateBurst is the rate limiter burst size.
	RateBurst int `env:"GMAIL_BRIDGE_RATE_BURST" envDefault:"1"`

	// ReadTimeout limits request read time.
	ReadTimeout time.Duration `env:"GMAIL_BRIDGE_READ_TIMEOUT" envDefault:"15s"`
	// WriteTimeout limits response write time; it must outlast ToolTimeout
	// or in-flight dispatches are cut off mid-response.
	WriteTimeout time.Duration `env:"GMAIL_BRIDGE_WRITE_TIMEOUT" envDefault:"6m"`
	// IdleTimeout controls idle connections.
	IdleTimeout time.Duration `env:"GMAIL_BRIDGE_IDLE_TIMEOUT" envDefault:"60s"`
	// ShutdownTimeout controls graceful shutdown duration.
	ShutdownTimeout time.Duration `env:"GMAIL_BRIDGE_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses environment variables into Config.
func Load() (Config, error) {
	return env.ParseAs[Config]()
}
