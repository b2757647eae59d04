// edhpower rates Commander decks hosted on Moxfield or Archidekt.
//
// Usage:
//
//	edhpower analyze <deck-url> [--output text|json|yaml] [--chart profile.html]
//	edhpower serve [--port 3000]
//	edhpower migrate up|down|version
//	edhpower batch urls.txt [--export summary.csv]
//	edhpower version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/edh-power/internal/version"
)

var rootFlags struct {
	configPath string
	debug      bool
}

var rootCmd = &cobra.Command{
	Use:   "edhpower",
	Short: "Commander deck power level analyzer",
	Long: `edhpower fetches a Commander deck from Moxfield or Archidekt, resolves card
metadata from Scryfall and reports a bracket level (1-5) alongside a
continuous salt score.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Config file (default: ~/.edh-power/config.toml)")
	pf.BoolVar(&rootFlags.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = version.GetVersion()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
