// Package cmd contains all CLI commands for senti.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/f3rmion/senti/internal/analyzer"
	"github.com/f3rmion/senti/internal/config"
	"github.com/f3rmion/senti/internal/history"
	"github.com/f3rmion/senti/internal/logging"
	"github.com/f3rmion/senti/internal/tui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "senti",
	Short: "Sentiment analysis in your terminal",
	Long: `senti sends text to a sentiment analysis service and shows the overall
and per-sentence polarity and subjectivity as badges, a line chart and
sentence cards.

The analyzer is expected at http://localhost:5000/api/analyze-sentiment
unless configured otherwise. 'senti serve' starts a local stand-in.

Running 'senti' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/senti)")
	flags.String("endpoint", "", "analyzer endpoint URL")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Bool("history", false, "record successful analyses in the local history")

	_ = viper.BindPFlag("analyzer.endpoint", flags.Lookup("endpoint"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("history.enabled", flags.Lookup("history"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("SENTI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadConfig reads config.yaml and applies flag and environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigDir())
	if err != nil {
		return nil, err
	}

	if viper.IsSet("analyzer.endpoint") {
		cfg.Analyzer.Endpoint = viper.GetString("analyzer.endpoint")
	}
	if viper.IsSet("analyzer.timeout") {
		cfg.Analyzer.Timeout = viper.GetDuration("analyzer.timeout")
	}
	if viper.IsSet("log.level") {
		cfg.Log.Level = viper.GetString("log.level")
	}
	if viper.IsSet("history.enabled") {
		cfg.History.Enabled = viper.GetBool("history.enabled")
	}
	if viper.IsSet("serve.addr") {
		cfg.Serve.Addr = viper.GetString("serve.addr")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *analyzer.Client {
	return analyzer.NewClient(cfg.Analyzer.Endpoint, analyzer.WithTimeout(cfg.Analyzer.Timeout))
}

// openHistory opens the history store when history is enabled, or returns nil.
func openHistory(cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// stderrLogger is used by the non-interactive commands.
func stderrLogger(cfg *config.Config) (zerolog.Logger, error) {
	logger, _, err := logging.New(cfg.Log.Level, "")
	return logger, err
}

// runTUI launches the TUI application.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog()

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Analyzer:  newClient(cfg),
		Logger:    logger,
		Config:    cfg,
		ConfigDir: getConfigDir(),
	}
	if store != nil {
		defer store.Close()
		opts.History = store
	}

	logger.Info().
		Str("endpoint", cfg.Analyzer.Endpoint).
		Bool("history", store != nil).
		Msg("starting TUI")

	return tui.Run(cmd.Context(), opts)
}
