package registry

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError reports arguments rejected by a capability's input schema.
type ValidationError struct {
	// Capability is the canonical capability name.
	Capability string
	// Violations lists the individual schema violations.
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Capability, strings.Join(e.Violations, "; "))
}

// ValidateArguments checks an argument mapping against the capability's input
// schema. Capabilities without a registered schema accept any mapping.
func (c *Capability) ValidateArguments(args map[string]any) error {
	if c.compiled == nil {
		return nil
	}
	if args == nil {
		args = map[string]any{}
	}
	result, err := c.compiled.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("validate arguments for %s: %w", c.Name, err)
	}
	if result.Valid() {
		return nil
	}
	verr := &ValidationError{Capability: c.Name}
	for _, issue := range result.Errors() {
		verr.Violations = append(verr.Violations, issue.String())
	}
	return verr
}
