package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: "file",
			Path:    filepath.Join(Dir(), "data"),
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}
}

const header = `# taskdesk configuration
# store.backend: file | sqlite | postgres | memory
# store.path: data directory (file) or database file (sqlite)
# store.dsn: postgres connection string (falls back to $DATABASE_URL)
`

// WriteDefault writes the default configuration to path, creating its directory.
func WriteDefault(path string) error {
	body, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, append([]byte(header), body...), 0o644)
}
