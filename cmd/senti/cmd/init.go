package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/senti/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize senti configuration",
	Long: `Write a default config.yaml to your config directory.

The file sets the analyzer endpoint and timeout, whether history is recorded,
the log level and the address 'senti serve' listens on.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.Save(configDir, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Start an analyzer, or run 'senti serve' for the local stand-in")
	fmt.Fprintln(out, "  2. Run 'senti' to open the TUI")
	return nil
}
