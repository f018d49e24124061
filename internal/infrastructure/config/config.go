package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/MartinSchlott/SimpleMCPSearchServer/utils/platformerrors"
)

// Transport selects the live MCP transport for the process lifetime.
type Transport string

const (
	TransportHTTP  Transport = "http"
	TransportStdio Transport = "stdio"
)

const defaultPort = 3123

// APIKeys holds the provider credentials.
type APIKeys struct {
	Jina string `json:"jina" env:"JINA_API_KEY"`
}

// Config holds all configuration for the MCP search server. It is loaded
// once at startup and treated as immutable afterwards.
type Config struct {
	Name      string  `json:"name"`
	Version   string  `json:"version"`
	APIKeys   APIKeys `json:"apiKeys"`
	LogLevel  string  `json:"logLevel" env:"MCP_LOG_LEVEL"`
	LogFormat string  `json:"logFormat" env:"MCP_LOG_FORMAT"` // json or console
	Transport string  `json:"transport" env:"MCP_TRANSPORT"`
	Port      int     `json:"port" env:"MCP_PORT"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Load reads the JSON configuration file at path, applies environment
// overrides and defaults, and validates the result. Any failure is a
// ConfigError; the caller is expected to exit.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, platformerrors.NewError(platformerrors.LayerInfrastructure, platformerrors.ErrorTypeConfig,
			fmt.Sprintf("failed to read config file %q", path), err)
	}

	cfg := &Config{}
	decoder := json.NewDecoder(strings.NewReader(string(raw)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, platformerrors.NewError(platformerrors.LayerInfrastructure, platformerrors.ErrorTypeConfig,
			fmt.Sprintf("invalid config file %q", path), err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, platformerrors.NewError(platformerrors.LayerInfrastructure, platformerrors.ErrorTypeConfig,
			"failed to apply environment overrides", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = "info"
	}
	if strings.TrimSpace(cfg.LogFormat) == "" {
		cfg.LogFormat = "json"
	}
	if strings.TrimSpace(cfg.Transport) == "" {
		cfg.Transport = string(TransportHTTP)
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return configError("name is required")
	}
	if strings.TrimSpace(cfg.Version) == "" {
		return configError("version is required")
	}
	if !validLogLevels[cfg.LogLevel] {
		return configError(fmt.Sprintf("invalid logLevel %q (want debug, info, warn or error)", cfg.LogLevel))
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return configError(fmt.Sprintf("invalid logFormat %q (want json or console)", cfg.LogFormat))
	}
	switch Transport(cfg.Transport) {
	case TransportHTTP, TransportStdio:
	default:
		return configError(fmt.Sprintf("invalid transport %q (want http or stdio)", cfg.Transport))
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return configError(fmt.Sprintf("invalid port %d", cfg.Port))
	}
	return nil
}

func configError(message string) error {
	return platformerrors.NewError(platformerrors.LayerInfrastructure, platformerrors.ErrorTypeConfig, message, nil)
}
