package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port            int    `toml:"port" validate:"min=1,max=65535"`
	Mode            string `toml:"mode" validate:"oneof=debug release test"`
	ShutdownTimeout int    `toml:"shutdown_timeout" validate:"min=0"`
}

type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=json console"`
}

// MemgraphConfig points at the store graphs are read from. An empty URI
// disables stored-group analyses.
type MemgraphConfig struct {
	URI      string `toml:"uri" validate:"omitempty,uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

type AnalysisConfig struct {
	BatchConcurrency int `toml:"batch_concurrency" validate:"min=1,max=64"`
	MaxNodes         int `toml:"max_nodes" validate:"min=0"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Analysis AnalysisConfig `toml:"analysis"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Mode:            "release",
			ShutdownTimeout: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Analysis: AnalysisConfig{
			BatchConcurrency: 4,
			MaxNodes:         5000,
		},
	}
}

// Load reads a TOML file over the defaults. A missing file is not an error;
// the defaults are returned as they are.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overlays environment variables on the loaded values.
func (c *Config) ApplyEnv() error {
	if val := os.Getenv("PORT"); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid PORT '%s': %w", val, err)
		}
		c.Server.Port = port
	}
	if val := os.Getenv("GIN_MODE"); val != "" {
		c.Server.Mode = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
	if val := os.Getenv("MEMGRAPH_URI"); val != "" {
		c.Memgraph.URI = val
	}
	if val := os.Getenv("MEMGRAPH_USER"); val != "" {
		c.Memgraph.User = val
	}
	if val := os.Getenv("MEMGRAPH_PASSWORD"); val != "" {
		c.Memgraph.Password = val
	}
	return nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// Address is the listen address for the HTTP server.
func (c *Config) Address() string {
	return ":" + strconv.Itoa(c.Server.Port)
}
