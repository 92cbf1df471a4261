// Package config loads and validates the floorctl configuration file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultServiceURL is used when no agent reference can be resolved at all.
const DefaultServiceURL = "http://localhost:3000/"

// Config is the floorctl configuration. All fields are optional; Default()
// yields a working zero configuration.
type Config struct {
	// DefaultAgent is the agent used when a command names none. It may be
	// an alias from Agents or a literal service URL.
	DefaultAgent string `yaml:"default_agent" json:"default_agent,omitempty"`

	// Agents maps short aliases to agent service URLs.
	Agents map[string]string `yaml:"agents" json:"agents,omitempty"`

	// Timeout bounds each protocol exchange, as a Go duration string
	// (e.g. "30s"). Empty means the client default.
	Timeout string `yaml:"timeout" json:"timeout,omitempty"`

	// SpeakerURI pins the client's speaker identity. Empty means a random
	// identity is generated per run.
	SpeakerURI string `yaml:"speaker_uri" json:"speaker_uri,omitempty"`

	// ConversationID pins the conversation identity. Empty means a random
	// identity is generated per run.
	ConversationID string `yaml:"conversation_id" json:"conversation_id,omitempty"`

	Logger *LoggerConfig `yaml:"logger" json:"logger,omitempty"`
}

// LoggerConfig configures log output.
type LoggerConfig struct {
	Level  string `yaml:"level" json:"level,omitempty"`
	File   string `yaml:"file" json:"file,omitempty"`
	Format string `yaml:"format" json:"format,omitempty"`
}

// Default returns the zero configuration.
func Default() *Config {
	return &Config{
		DefaultAgent: DefaultServiceURL,
	}
}

// LoadFile reads a YAML config file, expanding ${VAR}, ${VAR:-default} and
// $VAR references against the environment before parsing.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every configured URL parses and the timeout is a
// positive duration.
func (c *Config) Validate() error {
	for alias, serviceURL := range c.Agents {
		if err := validateServiceURL(serviceURL); err != nil {
			return fmt.Errorf("agent %q: %w", alias, err)
		}
	}

	if c.DefaultAgent != "" {
		if _, isAlias := c.Agents[c.DefaultAgent]; !isAlias {
			if err := validateServiceURL(c.DefaultAgent); err != nil {
				return fmt.Errorf("default_agent: %w", err)
			}
		}
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
		}
	}

	return nil
}

func validateServiceURL(serviceURL string) error {
	u, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid service URL %q: %w", serviceURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("service URL %q must use http or https", serviceURL)
	}
	if u.Host == "" {
		return fmt.Errorf("service URL %q has no host", serviceURL)
	}
	return nil
}

// ResolveAgent turns an agent reference into a service URL. An empty
// reference falls back to default_agent (and ultimately the built-in
// default); a reference matching a configured alias resolves through it;
// anything else must itself be a valid service URL.
func (c *Config) ResolveAgent(ref string) (string, error) {
	if ref == "" {
		ref = c.DefaultAgent
	}
	if ref == "" {
		return DefaultServiceURL, nil
	}

	if serviceURL, isAlias := c.Agents[ref]; isAlias {
		return serviceURL, nil
	}

	if err := validateServiceURL(ref); err != nil {
		return "", fmt.Errorf("unknown agent %q: not a configured alias and %w", ref, err)
	}
	return ref, nil
}

// TimeoutOrDefault returns the configured exchange timeout, or fallback when
// unset. Validate has already established that the value parses.
func (c *Config) TimeoutOrDefault(fallback time.Duration) time.Duration {
	if c.Timeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fallback
	}
	return d
}
