package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tetrisai/tetrisai/internal/observeui"
)

var (
	flagObserveHost string
	flagObservePort int
	flagObserveName string
)

var observeCmd = &cobra.Command{
	Use:   "observe",
	Short: "Connect as a read-only spectator",
	Long: `Connect to a running adapter server as an observer and render
incoming observation frames in the terminal.

Examples:
  tetrisai observe
  tetrisai observe --host 127.0.0.1 --port 7777`,
	Run: runObserve,
}

func init() {
	observeCmd.Flags().StringVar(&flagObserveHost, "host", "127.0.0.1", "Adapter host to connect to")
	observeCmd.Flags().IntVar(&flagObservePort, "port", 7777, "Adapter port to connect to")
	observeCmd.Flags().StringVar(&flagObserveName, "name", "tetrisai-observer", "Client name reported in hello")
}

func runObserve(_ *cobra.Command, _ []string) {
	addr := fmt.Sprintf("%s:%d", flagObserveHost, flagObservePort)
	model := observeui.New(addr, flagObserveName)

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running observer: %v\n", err)
		os.Exit(1)
	}
}
