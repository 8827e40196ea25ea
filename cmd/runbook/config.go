package main

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	envBaseURL  = "RUNBOOK_BASE_URL"
	envAPIToken = "RUNBOOK_API_TOKEN"
	envSentry   = "SENTRY_DSN"
)

// Config is the CLI configuration. Values come from the environment (and an
// optional .env file), then the YAML config file, then flags.
type Config struct {
	BaseURL   string            `yaml:"base_url"`
	APIToken  string            `yaml:"api_token"`
	Timeout   time.Duration     `yaml:"timeout"`
	Headers   map[string]string `yaml:"headers"`
	SentryDSN string            `yaml:"sentry_dsn"`
}

// loadEnv reads envFile into the process environment when it exists.
// Variables already set are not overwritten.
func loadEnv(envFile string) error {
	if envFile == "" {
		return nil
	}
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		return nil
	}
	return errors.Wrapf(godotenv.Load(envFile), "failed to load %s", envFile)
}

func configFromEnv() *Config {
	return &Config{
		BaseURL:   os.Getenv(envBaseURL),
		APIToken:  os.Getenv(envAPIToken),
		SentryDSN: os.Getenv(envSentry),
	}
}

// merge reads a YAML config file over cfg. ${VAR} references in the file
// are expanded from the environment.
func (cfg *Config) merge(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	var file Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &file); err != nil {
		return errors.Wrapf(err, "failed to parse %s", path)
	}

	if file.BaseURL != "" {
		cfg.BaseURL = file.BaseURL
	}
	if file.APIToken != "" {
		cfg.APIToken = file.APIToken
	}
	if file.Timeout > 0 {
		cfg.Timeout = file.Timeout
	}
	if file.SentryDSN != "" {
		cfg.SentryDSN = file.SentryDSN
	}
	for k, v := range file.Headers {
		if cfg.Headers == nil {
			cfg.Headers = map[string]string{}
		}
		cfg.Headers[k] = v
	}
	return nil
}

// validate checks the settings every command needs
func (cfg *Config) validate() error {
	var missing []string
	if cfg.BaseURL == "" {
		missing = append(missing, "base URL ("+envBaseURL+" or --base-url)")
	}
	if cfg.APIToken == "" {
		missing = append(missing, "API token ("+envAPIToken+" or --token)")
	}
	if len(missing) > 0 {
		return errors.Errorf("missing %s", strings.Join(missing, " and "))
	}
	return nil
}
