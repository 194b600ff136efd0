package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/f3rmion/senti/internal/history"
	"github.com/f3rmion/senti/internal/sentiment"
	"github.com/f3rmion/senti/internal/tui/components"
	"github.com/f3rmion/senti/internal/tui/views"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List or show recorded analyses",
	Long: `List past analyses from the local history, newest first.

With an id, the full result of that analysis is shown. History is recorded
only when enabled with --history, SENTI_HISTORY_ENABLED=true or
history.enabled: true in config.yaml. This command reads it regardless.

Examples:
  senti history
  senti history --limit 5
  senti history 12
  senti history --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to list (0 for all)")
	historyCmd.Flags().Bool("json", false, "print entries as JSON")
	historyCmd.Flags().Bool("clear", false, "delete every entry")
	historyCmd.Flags().Bool("delete", false, "delete the entry with the given id")
}

type historyJSON struct {
	ID        int64            `json:"id"`
	Text      string           `json:"text"`
	CreatedAt string           `json:"created_at"`
	Result    sentiment.Result `json:"result"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")
	clearAll, _ := cmd.Flags().GetBool("clear")
	del, _ := cmd.Flags().GetBool("delete")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if clearAll {
		n, err := store.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d entries\n", n)
		return nil
	}

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}

		if del {
			if err := store.Delete(ctx, id); err != nil {
				return fmt.Errorf("deleting entry %d: %w", id, err)
			}
			fmt.Fprintf(out, "Deleted entry %d\n", id)
			return nil
		}

		e, err := store.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("loading entry %d: %w", id, err)
		}
		if asJSON {
			return writeJSON(cmd, toHistoryJSON(e))
		}
		fmt.Fprintf(out, "#%d  %s\n%s\n\n", e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"), e.Text)
		fmt.Fprintln(out, views.RenderResult(&e.Result, 80))
		return nil
	}
	if del {
		return errors.New("--delete needs an id")
	}

	entries, err := store.List(ctx, limit)
	if err != nil {
		return err
	}

	if asJSON {
		items := make([]historyJSON, 0, len(entries))
		for _, e := range entries {
			items = append(items, toHistoryJSON(e))
		}
		return writeJSON(cmd, items)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No analyses recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tCATEGORY\tPOLARITY\tTEXT")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.Result.Overall.Category,
			sentiment.FormatNumber(e.Result.Overall.Polarity),
			components.Truncate(e.Text, 50),
		)
	}
	return w.Flush()
}

func toHistoryJSON(e history.Entry) historyJSON {
	return historyJSON{
		ID:        e.ID,
		Text:      e.Text,
		CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Result:    e.Result,
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
