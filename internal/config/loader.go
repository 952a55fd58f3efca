package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Dir is the per-user taskdesk directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskdesk"
	}
	return filepath.Join(home, ".taskdesk")
}

// GlobalPath returns the path to the per-user config file
func GlobalPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// ProjectPath returns the path to the config file in the working directory
func ProjectPath() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, ".taskdesk", "config.yaml")
}

// Load merges defaults, config files and TASKDESK_* environment variables.
// With an explicit path only that file is read and it must exist; otherwise
// the global file then the project file are merged when present.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("store.backend", cfg.Store.Backend)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("store.dsn", cfg.Store.DSN)
	v.SetDefault("store.key", cfg.Store.Key)
	v.SetDefault("export.dir", cfg.Export.Dir)
	v.SetEnvPrefix("TASKDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if err := mergeFile(v, path); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	} else {
		for _, p := range []string{GlobalPath(), ProjectPath()} {
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := mergeFile(v, p); err != nil {
				log.Printf("config: skipping %s: %v", p, err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = os.Getenv("DATABASE_URL")
	}
	return cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	return v.MergeInConfig()
}
