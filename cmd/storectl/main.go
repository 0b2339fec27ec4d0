// Package main is the entry point for the storectl CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jacksmith/storectl/internal/api"
	"github.com/jacksmith/storectl/internal/cli"
	"github.com/jacksmith/storectl/internal/config"
	"github.com/jacksmith/storectl/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		// Restore the default handler so a second interrupt exits at once.
		<-ctx.Done()
		stop()
	}()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	app.close()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Red(cli.FormatError(err)))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "storectl",
	Short: "storectl - manage store records over the store REST API",
	Long: `storectl creates, shows, updates and deletes store records held by the
store REST API.

Updates require the store to be fetched first, and deletes ask for
confirmation. Run "storectl dashboard" for an interactive session with all
four forms side by side.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var (
	flagBaseURL  string
	flagConfig   string
	flagLogLevel string
	flagTimeout  time.Duration
)

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("storectl version {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBaseURL, "base-url", config.DefaultBaseURL, "store API base URL (env STORE_API_BASE_URL)")
	pf.StringVar(&flagConfig, "config", "", "config file (default "+config.DefaultFile+")")
	pf.StringVar(&flagLogLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error (env STORECTL_LOG_LEVEL)")
	pf.DurationVar(&flagTimeout, "timeout", config.DefaultTimeout, "per-request timeout (env STORE_API_TIMEOUT)")
}

// appState is what every command needs after setup.
type appState struct {
	cfg     *config.Config
	client  *api.Client
	logger  *zap.Logger
	cleanup func()
}

var app appState

func (a *appState) close() {
	if a.cleanup != nil {
		a.cleanup()
	}
	*a = appState{}
}

// loadConfig resolves configuration with flags taking precedence over the
// environment, the config file and defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Loader{Path: flagConfig}.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = flagBaseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = flagTimeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	app.close()
	logger, cleanup, err := logging.Initialize(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	app = appState{
		cfg:     cfg,
		client:  api.NewClient(cfg.BaseURL, api.WithTimeout(cfg.Timeout), api.WithLogger(logger)),
		logger:  logger,
		cleanup: cleanup,
	}

	logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("base_url", cfg.BaseURL),
		zap.Duration("timeout", cfg.Timeout))
	return nil
}
