package registry

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Load parses YAML bytes into a validated, immutable Registry.
func Load(data []byte) (*Registry, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse registry yaml: %w", err)
	}
	return Build(&cfg)
}

// Build validates a parsed Config and constructs the Registry.
func Build(cfg *Config) (*Registry, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	reg := &Registry{
		service:   cfg.Bridge.Service,
		version:   cfg.Bridge.Version,
		namespace: cfg.Bridge.Namespace,
		byAlias:   make(map[string]*Capability),
	}

	for i := range cfg.Capabilities {
		entry := cfg.Capabilities[i]
		cap := &Capability{
			Name:        entry.Name,
			Title:       entry.Title,
			Description: entry.Description,
			Schema:      entry.Schema,
			ReadOnly:    entry.ReadOnly,
			Idempotent:  entry.Idempotent,
			InputSchema: entry.InputSchema,
		}
		if strings.TrimSpace(entry.Timeout) != "" {
			timeout, err := time.ParseDuration(entry.Timeout)
			if err != nil {
				return nil, fmt.Errorf("capability %s: invalid timeout: %w", entry.Name, err)
			}
			cap.Timeout = timeout
		}
		if entry.InputSchema != nil {
			compiled, err := compileSchema(entry.InputSchema)
			if err != nil {
				return nil, fmt.Errorf("capability %s: %w", entry.Name, err)
			}
			cap.compiled = compiled
		}

		// The canonical name is always an accepted surface form.
		for _, alias := range append([]string{entry.Name}, entry.Aliases...) {
			if existing, taken := reg.byAlias[alias]; taken && existing != cap {
				return nil, fmt.Errorf("alias %q registered for both %s and %s", alias, existing.Name, cap.Name)
			}
			reg.byAlias[alias] = cap
		}
		reg.ordered = append(reg.ordered, cap)
	}

	return reg, nil
}

func validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("registry config is nil")
	}
	if strings.TrimSpace(cfg.Bridge.Service) == "" {
		return fmt.Errorf("bridge.service is required")
	}
	if len(cfg.Capabilities) == 0 {
		return fmt.Errorf("at least one capability is required")
	}
	for i, entry := range cfg.Capabilities {
		if strings.TrimSpace(entry.Name) == "" {
			return fmt.Errorf("capabilities[%d].name is required", i)
		}
		for j, alias := range entry.Aliases {
			if strings.TrimSpace(alias) == "" {
				return fmt.Errorf("capabilities[%d].aliases[%d] is empty", i, j)
			}
		}
	}
	return nil
}

func compileSchema(doc map[string]any) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("compile input schema: %w", err)
	}
	return schema, nil
}
