package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/f3rmion/senti/internal/tui/views"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Analyze text without the TUI",
	Long: `Send text to the analyzer and print the result.

The text is taken from the arguments, joined with spaces. With no arguments,
or a single "-", the text is read from stdin.

Examples:
  senti analyze "I love this! The ending was weak."
  echo "What a day." | senti analyze
  senti analyze --json "Great food."`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("json", false, "print the analyzer response as JSON")
	analyzeCmd.Flags().Int("width", 80, "output width in cells")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	width, _ := cmd.Flags().GetInt("width")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := stderrLogger(cfg)
	if err != nil {
		return err
	}

	text, err := readText(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if text == "" {
		return errors.New("no text to analyze")
	}

	client := newClient(cfg)
	res, err := client.Analyze(cmd.Context(), text)
	if err != nil {
		logger.Error().Err(err).Str("endpoint", client.Endpoint()).Msg("analyze sentiment")
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		if _, err := store.Record(cmd.Context(), text, res); err != nil {
			logger.Warn().Err(err).Msg("record analysis")
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintln(out, views.RenderResult(res, width))
	return nil
}

// readText joins args, or reads r when args are empty or a single "-".
func readText(r io.Reader, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}

	if f, ok := r.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", errors.New("no text given: pass it as arguments or pipe it on stdin")
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
