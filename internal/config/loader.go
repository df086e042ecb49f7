package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults applied by WithDefaults when the corresponding field is unset.
const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8000
	DefaultModelPath   = "/srv/textgen/models"
	DefaultContextSize = 2048
	DefaultDevice      = "auto"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
	DefaultMaxBody     = 1 << 20
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by defaults in WithDefaults.
type Config struct {
	Host               string   `json:"host" yaml:"host" toml:"host"`
	Port               int      `json:"port" yaml:"port" toml:"port"`
	ModelPath          string   `json:"model_path" yaml:"model_path" toml:"model_path"`
	Device             string   `json:"device" yaml:"device" toml:"device"`
	ContextSize        int      `json:"context_size" yaml:"context_size" toml:"context_size"`
	Threads            int      `json:"threads" yaml:"threads" toml:"threads"`
	GPULayers          int      `json:"gpu_layers" yaml:"gpu_layers" toml:"gpu_layers"`
	MaxBodyBytes       int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	LogLevel           string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat          string   `json:"log_format" yaml:"log_format" toml:"log_format"`
	CORSEnabled        bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" toml:"cors_allowed_origins"`
	StaticDir          string   `json:"static_dir" yaml:"static_dir" toml:"static_dir"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// WithDefaults returns a copy of cfg with every unset field defaulted.
func (c Config) WithDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.ModelPath == "" {
		c.ModelPath = DefaultModelPath
	}
	if c.Device == "" {
		c.Device = DefaultDevice
	}
	if c.ContextSize <= 0 {
		c.ContextSize = DefaultContextSize
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBody
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	return c
}

// Validate checks values that cannot be defaulted away.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Threads < 0 {
		return fmt.Errorf("invalid threads: %d (must be >= 0)", c.Threads)
	}
	if c.GPULayers < 0 {
		return fmt.Errorf("invalid gpu_layers: %d (must be >= 0)", c.GPULayers)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log_format: %q (want console|json)", c.LogFormat)
	}
	return nil
}

// Addr is the listen address built from Host and Port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
