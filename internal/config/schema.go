package config

// Config is the full taskdesk configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
}

// StoreConfig selects and locates the durable store.
type StoreConfig struct {
	// Backend is one of file, sqlite, postgres, memory.
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Path is the directory for file, or the database file for sqlite.
	Path string `yaml:"path" mapstructure:"path"`
	DSN  string `yaml:"dsn,omitempty" mapstructure:"dsn"`
	// Key names the entry that holds the task list. Empty uses the default.
	Key string `yaml:"key,omitempty" mapstructure:"key"`
}

// ExportConfig controls where CSV exports land.
type ExportConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}
