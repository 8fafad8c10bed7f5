package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Settings
)

var rootCmd = &cobra.Command{
	Use:   "foundry-agent",
	Short: "Ask questions about tabular data through a hosted model",
	Long: `foundry-agent loads a spreadsheet or CSV file, folds it into a bounded
text prompt, and answers questions about it through a hosted completion
endpoint. Run "chat" for a console loop or "serve" for the browser UI.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadSettings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.foundry-agent/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadSettings() {
	s, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal here: commands that need config validate it themselves
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = s
}

// settings returns the loaded configuration, loading it on demand when
// a command runs outside cobra's initialize hook (tests).
func settings() (*cfgpkg.Settings, error) {
	if cfg != nil {
		return cfg, nil
	}
	return cfgpkg.Load(cfgFile)
}
