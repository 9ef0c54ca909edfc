// tetrisai runs a deterministic Tetris core behind an AI adapter
// protocol server, or connects as a read-only spectator to one.
//
// Usage:
//
//	tetrisai serve             - Start the adapter server
//	tetrisai observe           - Connect as an observer and render the game
//
// Global flags:
//
//	--seed <value>    - Set the RNG seed for the first episode (0 = derived from game id)
//	--config <path>   - Path to a tetrisai.yaml tuning overlay
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagSeed   int64
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetrisai",
	Short: "Deterministic Tetris core with an AI adapter protocol server",
	Long: `tetrisai runs a fixed-timestep Tetris engine behind a newline-delimited
JSON protocol so an external agent can play it as a controller while any
number of observers watch.

Available commands:
  serve     - Start the adapter server
  observe   - Connect as a read-only spectator

Examples:
  tetrisai serve --seed 42
  tetrisai observe --host 127.0.0.1 --port 7777`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for the first episode (0 = derived from game id)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a tetrisai.yaml tuning overlay")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(observeCmd)
}
