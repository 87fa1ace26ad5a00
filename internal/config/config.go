package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Placebo holds all configuration for loading and applying modifier definitions.
// Every field can be overridden from the environment (PLACEBO_*).
type Placebo struct {
	LogLevel string `yaml:"log_level" env:"PLACEBO_LOG_LEVEL"`

	// Catalogs
	AttributesPath string `yaml:"attributes_path" env:"PLACEBO_ATTRIBUTES_PATH"`
	ModifiersDir   string `yaml:"modifiers_dir" env:"PLACEBO_MODIFIERS_DIR"`

	// Strict aborts catalog loading on the first bad definition; otherwise bad files are logged and skipped.
	Strict bool `yaml:"strict" env:"PLACEBO_STRICT"`

	// IDScheme is "seeded" (default) or "content".
	IDScheme string `yaml:"id_scheme" env:"PLACEBO_ID_SCHEME"`

	// Seed for the CLI random source; 0 picks a random seed.
	Seed uint64 `yaml:"seed" env:"PLACEBO_SEED"`

	// Database
	Database DatabaseConfig `yaml:"database" envPrefix:"PLACEBO_DB_"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultPlacebo returns Placebo config with sensible defaults.
func DefaultPlacebo() Placebo {
	return Placebo{
		LogLevel:       "info",
		AttributesPath: "data/attributes.yaml",
		ModifiersDir:   "data/modifiers",
		Strict:         true,
		IDScheme:       "seeded",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "placebo",
			Password: "placebo",
			DBName:   "placebo",
			SSLMode:  "disable",
		},
	}
}

// LoadPlacebo loads config from a YAML file, then applies environment overrides.
// If the file doesn't exist, defaults are used.
func LoadPlacebo(path string) (Placebo, error) {
	cfg := DefaultPlacebo()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env overrides: %w", err)
	}

	return cfg, nil
}
