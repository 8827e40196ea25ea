package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/eshaffer321/runbook-go/pkg/runbook"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by all subcommands
type app struct {
	out    io.Writer
	logger *zap.Logger

	envFile    string
	configFile string
	baseURL    string
	token      string
	verbose    bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "runbook",
		Short:         "Command line client for the Runbook API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.StringVarP(&a.configFile, "config", "c", "", "YAML config file")
	flags.StringVar(&a.baseURL, "base-url", "", "Runbook site URL (overrides "+envBaseURL+")")
	flags.StringVar(&a.token, "token", "", "API token (overrides "+envAPIToken+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		newQueryCmd(a),
		newQueriesCmd(a),
		newGetCmd(a),
		newSendCmd(a),
		newDownloadCmd(a),
		newUploadCmd(a),
	)
	return root
}

func (a *app) setupLogger() error {
	if !a.verbose {
		a.logger = zap.NewNop()
		return nil
	}

	cfg := zap.NewDevelopmentConfig()
	logger, err := cfg.Build()
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}
	a.logger = logger
	return nil
}

// config resolves the configuration from environment, file and flags
func (a *app) config() (*Config, error) {
	if err := loadEnv(a.envFile); err != nil {
		return nil, err
	}

	cfg := configFromEnv()
	if err := cfg.merge(a.configFile); err != nil {
		return nil, err
	}
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	if a.token != "" {
		cfg.APIToken = a.token
	}
	return cfg, cfg.validate()
}

func (a *app) client() (*runbook.Client, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}

	logger := a.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return runbook.NewClient(&runbook.ClientOptions{
		BaseURL:   cfg.BaseURL,
		APIToken:  cfg.APIToken,
		Timeout:   cfg.Timeout,
		Headers:   cfg.Headers,
		Logger:    runbook.NewZapLogger(logger),
		SentryDSN: cfg.SentryDSN,
	})
}

// print writes v as indented JSON
func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe renders a RequestError with its field level messages
func describe(err error) error {
	reqErr, ok := runbook.AsRequestError(err)
	if !ok {
		return err
	}

	var attrs []string
	for attr := range reqErr.Attributes {
		if attr != runbook.BaseAttribute {
			attrs = append(attrs, attr)
		}
	}
	if len(attrs) == 0 {
		return err
	}
	sort.Strings(attrs)

	var b strings.Builder
	b.WriteString(reqErr.Error())
	for _, attr := range attrs {
		for _, d := range reqErr.Attributes[attr] {
			fmt.Fprintf(&b, "\n  %s: %s", attr, d.Message)
		}
	}
	return errors.New(b.String())
}
