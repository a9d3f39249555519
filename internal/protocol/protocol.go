// Package protocol defines the bridge's outward wire contract and the
// classification of worker output into a single outcome shape.
package protocol

import "encoding/json"

// Error kinds produced by the bridge itself. Remote error kinds (for example
// AuthError) are passed through verbatim in the failure outcome.
const (
	KindInvalidRequest    = "InvalidRequest"
	KindUnknownCapability = "UnknownCapability"
	KindExecutionFailed   = "ExecutionFailed"
	KindTimeout           = "Timeout"
	KindOutputTooLarge    = "OutputTooLarge"
)

// ExecuteRequest is the inbound JSON envelope for tool dispatch.
type ExecuteRequest struct {
	// ToolName is the capability identifier, possibly aliased or namespaced.
	ToolName string `json:"tool_name"`
	// Arguments is the open-ended argument mapping for the capability.
	Arguments map[string]any `json:"arguments"`
}

// ExecuteResponse is the outward success envelope.
type ExecuteResponse struct {
	// Result carries the capability payload or raw worker text.
	Result any `json:"result"`
}

// ErrorResponse is the outward failure envelope.
type ErrorResponse struct {
	// Error is a human-readable message.
	Error string `json:"error"`
	// Type is the error kind, bridge-level or remote.
	Type string `json:"type,omitempty"`
	// Traceback is the remote diagnostic trace when available.
	Traceback string `json:"traceback,omitempty"`
}

// HealthResponse is the fixed liveness payload.
type HealthResponse struct {
	// Status is always "ok" while the process is alive.
	Status string `json:"status"`
	// Service names the bridge.
	Service string `json:"service"`
}

// workerLine is the structured single-line stdout contract of the worker
// subprocess. Ok distinguishes tagged success from tagged failure; legacy
// workers omit it and are classified by the presence of an "error" key.
type workerLine struct {
	Ok        *bool           `json:"ok"`
	Result    json.RawMessage `json:"result"`
	Error     *string         `json:"error"`
	Type      string          `json:"type"`
	Traceback string          `json:"traceback"`

	// raw is the full object, kept for legacy success payloads.
	raw json.RawMessage
}
