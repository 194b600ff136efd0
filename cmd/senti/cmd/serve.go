package cmd

import (
	"github.com/f3rmion/senti/internal/backend"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local stand-in sentiment analyzer",
	Long: `Start an HTTP service that answers POST /api/analyze-sentiment the way
the analyzer the TUI talks to does. Sentences are scored with VADER.

The service listens on localhost:5000 by default, which matches the default
analyzer endpoint. Stop it with Ctrl+C.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default from serve.addr, localhost:5000)")
	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := stderrLogger(cfg)
	if err != nil {
		return err
	}

	api := backend.NewAPI(backend.NewAnalyzer(backend.NewVaderScorer()), logger)

	return backend.Serve(cmd.Context(), cfg.Serve.Addr, api)
}
