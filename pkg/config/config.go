package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/vuet/vuet-client/pkg/retry"
)

// Config holds all configuration for the Vuet client.
// Configuration can come from a YAML file or environment variables.
// Environment variables always override YAML values for fields that support both.
// Tokens must only come from environment variables.
type Config struct {
	Env     string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version string `yaml:"-"` // Set at load time, not from config

	API    APIConfig    `yaml:"api"`
	Auth   AuthConfig   `yaml:"auth"`
	Retry  RetryConfig  `yaml:"retry"`
	Loader LoaderConfig `yaml:"loader"`
	Log    LogConfig    `yaml:"log"`
}

// APIConfig holds the REST API connection settings.
type APIConfig struct {
	// BaseURL overrides the environment's default API URL when set.
	BaseURL string        `yaml:"base_url" env:"VUET_API_BASE_URL" env-default:""`
	Timeout time.Duration `yaml:"timeout" env:"VUET_API_TIMEOUT" env-default:"30s"`
}

// AuthConfig holds the API credentials.
type AuthConfig struct {
	AccessToken  string `yaml:"-" env:"VUET_ACCESS_TOKEN"`  // Secret - not in YAML
	RefreshToken string `yaml:"-" env:"VUET_REFRESH_TOKEN"` // Secret - not in YAML

	// RefreshSkew is how long before expiry the access token is refreshed.
	RefreshSkew time.Duration `yaml:"refresh_skew" env:"VUET_AUTH_REFRESH_SKEW" env-default:"1m"`
}

// RetryConfig controls retries of transient fetch failures.
type RetryConfig struct {
	MaxRetries       int           `yaml:"max_retries" env:"VUET_RETRY_MAX_RETRIES" env-default:"3"`
	InitialDelay     time.Duration `yaml:"initial_delay" env:"VUET_RETRY_INITIAL_DELAY" env-default:"250ms"`
	MaxDelay         time.Duration `yaml:"max_delay" env:"VUET_RETRY_MAX_DELAY" env-default:"5s"`
	MaxSameErrorType int           `yaml:"max_same_error_type" env:"VUET_RETRY_MAX_SAME_ERROR_TYPE" env-default:"3"`
}

// LoaderConfig controls the fetch coordinator.
type LoaderConfig struct {
	// Concurrency bounds the number of record kinds fetched at once.
	Concurrency int `yaml:"concurrency" env:"VUET_LOADER_CONCURRENCY" env-default:"4"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// environmentURLs maps ENVIRONMENT to the API base URL used when
// VUET_API_BASE_URL is not set.
var environmentURLs = map[string]string{
	"local":      "http://localhost:8000/",
	"staging":    "https://api.staging.vuet.app/",
	"production": "https://api.vuet.app/",
}

// Load reads configuration from path with environment variable overrides.
// A missing file is not an error: configuration then comes from the
// environment alone. The version parameter is set on the returned Config.
func Load(path, version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if path != "" && fileExists(path) {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	baseURL, err := cfg.resolveBaseURL()
	if err != nil {
		return nil, fmt.Errorf("invalid API configuration: %w", err)
	}
	cfg.API.BaseURL = baseURL

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// resolveBaseURL picks the explicit base URL or the environment default and
// normalises it to end with a slash.
func (c *Config) resolveBaseURL() (string, error) {
	raw := c.API.BaseURL
	if raw == "" {
		var ok bool
		raw, ok = environmentURLs[c.Env]
		if !ok {
			return "", fmt.Errorf("unknown environment %q and no VUET_API_BASE_URL set", c.Env)
		}
		if c.Env == "local" {
			raw = ResolveURLForDocker(raw)
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base URL must be http or https, got %q", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base URL has no host: %q", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String(), nil
}

func (c *Config) validate() error {
	var errs []error
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api timeout must be positive"))
	}
	if c.Loader.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("loader concurrency must be at least 1"))
	}
	if c.Retry.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("retry max_retries must not be negative"))
	}
	if c.Retry.MaxDelay < c.Retry.InitialDelay {
		errs = append(errs, fmt.Errorf("retry max_delay must not be below initial_delay"))
	}
	if c.Auth.RefreshToken != "" && c.Auth.AccessToken == "" {
		errs = append(errs, fmt.Errorf("VUET_REFRESH_TOKEN requires VUET_ACCESS_TOKEN"))
	}
	return errors.Join(errs...)
}

// RetryPolicy converts the retry section into a retry.Config.
func (r RetryConfig) RetryPolicy() *retry.Config {
	policy := retry.DefaultConfig()
	policy.MaxRetries = r.MaxRetries
	policy.InitialDelay = r.InitialDelay
	policy.MaxDelay = r.MaxDelay
	policy.MaxSameErrorType = r.MaxSameErrorType
	return policy
}
