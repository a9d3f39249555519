// Package configs embeds the default capability registry shipped with the
// bridge binary.
package configs

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed registry.yaml
var embedded embed.FS

// DefaultRegistryName is the embedded registry filename.
const DefaultRegistryName = "registry.yaml"

// Default returns the embedded capability registry.
func Default() ([]byte, error) {
	data, err := fs.ReadFile(embedded, DefaultRegistryName)
	if err != nil {
		return nil, fmt.Errorf("read embedded registry: %w", err)
	}
	return data, nil
}
