// Package config loads client configuration for the upload service.
//
// Configuration is resolved in three layers, later layers winning:
// built-in defaults, an optional TOML file (~/.config/graphport/config.toml
// or an explicit path), and GRAPHPORT_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/graphport/graphport/pkg/errors"
)

// Defaults.
const (
	DefaultProtocol   = "https"
	DefaultServer     = "hub.graphistry.com"
	DefaultAPIVersion = 1
)

// Config holds the resolved client configuration.
type Config struct {
	// Protocol is "http" or "https".
	Protocol string `toml:"protocol"`

	// Server is the upload service hostname, without protocol.
	Server string `toml:"server"`

	// ClientProtocolHostname overrides the base used when composing browser
	// URLs, for deployments where the API and the viewer differ. When empty,
	// Protocol://Server is used.
	ClientProtocolHostname string `toml:"client_protocol_hostname"`

	// APIVersion selects the upload protocol (1, 2, or 3).
	APIVersion int `toml:"api_version"`

	// Key is a legacy API key (protocol versions 1 and 2).
	Key string `toml:"key"`

	// Username and Password authenticate the JWT flow (protocol version 3).
	Username string `toml:"username"`
	Password string `toml:"password"`

	// DatasetPrefix namespaces generated dataset names.
	DatasetPrefix string `toml:"dataset_prefix"`

	// SkipCertificateValidation disables TLS verification. Only meaningful
	// for self-hosted servers with self-signed certificates.
	SkipCertificateValidation bool `toml:"skip_certificate_validation"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Protocol:   DefaultProtocol,
		Server:     DefaultServer,
		APIVersion: DefaultAPIVersion,
	}
}

// Load resolves the configuration: defaults, then the TOML file at path (or
// the default location when path is empty; a missing default file is not an
// error), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err,
					"parse config file %s", path)
			}
		} else if explicit {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err,
				"config file %s", path)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if c.Protocol != "http" && c.Protocol != "https" {
		return errors.New(errors.ErrCodeInvalidConfig,
			`protocol must be "http" or "https", got %q`, c.Protocol)
	}
	if c.Server == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server must not be empty")
	}
	if c.APIVersion < 1 || c.APIVersion > 3 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"api_version must be 1, 2, or 3, got %d", c.APIVersion)
	}
	return nil
}

// BaseURL returns the API base URL.
func (c Config) BaseURL() string {
	return c.Protocol + "://" + c.Server
}

// ViewBaseURL returns the base URL for browser-facing visualization links.
func (c Config) ViewBaseURL() string {
	if c.ClientProtocolHostname != "" {
		return c.ClientProtocolHostname
	}
	return c.BaseURL()
}

// DefaultPath returns the default config file location, or "" when the home
// directory cannot be resolved.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "graphport", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "graphport", "config.toml")
}

func applyEnv(cfg *Config) {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setStr(&cfg.Protocol, "GRAPHPORT_PROTOCOL")
	setStr(&cfg.Server, "GRAPHPORT_SERVER")
	setStr(&cfg.ClientProtocolHostname, "GRAPHPORT_CLIENT_PROTOCOL_HOSTNAME")
	setStr(&cfg.Key, "GRAPHPORT_API_KEY")
	setStr(&cfg.Username, "GRAPHPORT_USERNAME")
	setStr(&cfg.Password, "GRAPHPORT_PASSWORD")
	setStr(&cfg.DatasetPrefix, "GRAPHPORT_DATASET_PREFIX")

	if v := os.Getenv("GRAPHPORT_API_VERSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.APIVersion = n
		}
	}
	if v := os.Getenv("GRAPHPORT_SKIP_CERT_VALIDATION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SkipCertificateValidation = b
		}
	}
}
