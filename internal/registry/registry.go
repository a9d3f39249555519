// Package registry holds the immutable capability table: canonical names,
// caller-facing aliases, parameter-schema identifiers, and optional argument
// schemas. It is built once at startup and shared read-only.
package registry

import (
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// Capability is one resolved registry entry. Immutable after Load.
type Capability struct {
	// Name is the canonical capability name.
	Name string
	// Title is the human-friendly title.
	Title string
	// Description explains the capability.
	Description string
	// Schema is the worker-side parameter-schema identifier; empty means the
	// worker receives the raw argument mapping.
	Schema string
	// Timeout is the per-capability wall-clock budget, zero for the default.
	Timeout time.Duration
	// ReadOnly hints that the capability does not mutate mailbox state.
	ReadOnly bool
	// Idempotent hints that repeated calls have no additional effect.
	Idempotent bool
	// InputSchema is the raw JSON Schema document, nil when absent.
	InputSchema map[string]any

	compiled *gojsonschema.Schema
}

// Registry maps every accepted surface form to its canonical capability.
type Registry struct {
	service   string
	version   string
	namespace string
	byAlias   map[string]*Capability
	ordered   []*Capability
}

// NotFoundError reports an identifier that resolves to no capability. It
// carries both the original and the namespace-stripped form for diagnostics.
type NotFoundError struct {
	// Identifier is the identifier as supplied by the caller.
	Identifier string
	// Stripped is the identifier after namespace stripping.
	Stripped string
}

func (e *NotFoundError) Error() string {
	if e.Stripped != "" && e.Stripped != e.Identifier {
		return fmt.Sprintf("Unknown tool: %s (tried %q)", e.Identifier, e.Stripped)
	}
	return fmt.Sprintf("Unknown tool: %s", e.Identifier)
}

// Service returns the bridge service name.
func (r *Registry) Service() string { return r.service }

// Version returns the registry contract version.
func (r *Registry) Version() string { return r.version }

// Capabilities returns registry entries in declaration order.
func (r *Registry) Capabilities() []*Capability { return r.ordered }

// Resolve maps a caller-supplied identifier to its canonical capability.
// Resolution is exact-string and case-sensitive; no fuzzy matching.
func (r *Registry) Resolve(identifier string) (*Capability, error) {
	stripped := identifier
	if r.namespace != "" {
		stripped = strings.TrimPrefix(identifier, r.namespace+"/")
	}
	if cap, ok := r.byAlias[stripped]; ok {
		return cap, nil
	}
	return nil, &NotFoundError{Identifier: identifier, Stripped: stripped}
}
