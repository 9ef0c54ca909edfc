package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tetrisai/tetrisai/internal/adapter"
	"github.com/tetrisai/tetrisai/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the adapter server",
	Long: `Start the newline-delimited JSON adapter server that lets one
controller play the game and any number of observers stream snapshots.

Runtime tuning is sourced from --config if given, otherwise from the
first of ~/.tetrisai/config.yaml and configs/tetrisai.yaml that loads,
otherwise from built-in defaults, overlaid by TETRIS_AI_* environment
variables, which always win.

Examples:
  tetrisai serve
  tetrisai serve --seed 42
  tetrisai serve --config ./configs/tetrisai.yaml`,
	Run: runServe,
}

func runServe(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetrisai",
	})

	overlay, err := config.LoadAdapterConfig(flagConfig)
	if err != nil {
		logger.Warn("could not load config overlay", "error", err)
	}

	base := adapter.DefaultConfig()
	base = mergeOverlay(base, overlay)
	cfg := adapter.LoadFromEnv(base)

	var seed *uint32
	if flagSeed != 0 {
		s := uint32(flagSeed)
		seed = &s
	}

	server, err := adapter.NewServer(cfg, seed, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func mergeOverlay(base adapter.Config, overlay config.AdapterConfig) adapter.Config {
	if overlay.Host != "" {
		base.Host = overlay.Host
	}
	if overlay.Port != 0 {
		base.Port = overlay.Port
	}
	if overlay.ObsHz != 0 {
		base.ObsHz = overlay.ObsHz
	}
	if overlay.MaxPending != 0 {
		base.MaxPending = overlay.MaxPending
	}
	if overlay.LogPath != "" {
		base.LogPath = overlay.LogPath
	}
	if overlay.LogEveryN != 0 {
		base.LogEveryN = overlay.LogEveryN
	}
	if overlay.LogMaxLines != 0 {
		base.LogMaxLines = overlay.LogMaxLines
	}
	return base
}
