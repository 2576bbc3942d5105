package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/station-saarthi/saarthi-cli/internal/output"
	"github.com/station-saarthi/saarthi-cli/internal/tui"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "saarthi",
	Short: "Look up train schedules from the Station Saarthi service",
	Long: `saarthi is a terminal client for the Station Saarthi train schedule service.

Search a train by number or name and see its next station, services,
platform and coach composition.

Quick Start:
  1. Launch TUI:               saarthi (or saarthi tui)
  2. Look up a train:          saarthi lookup 12301
  3. Several trains at once:   saarthi lookup 12301 12951 "Howrah Rajdhani"
  4. JSON for scripting:       saarthi lookup 12301 --json

Configuration is read from $XDG_CONFIG_HOME/saarthi/config.toml, a .env
file in the working directory and SAARTHI_* environment variables.
Flags override all of them.`,
	Version:       version,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is provided, launch TUI
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagConfig      string
	flagBaseURL     string
	flagTimeout     time.Duration
	flagNoCache     bool
	flagColor       string
	flagJSON        bool
	flagRawJSON     bool
	flagDebug       bool
	flagLogFile     string
	flagMetricsAddr string
)

// Lookup flags
var flagParallel int

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/saarthi/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Schedule service base URL")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Request timeout (e.g. 5s)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Disable response caching")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagRawJSON, "raw-json", false, "Output raw API response")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	lookupCmd.Flags().IntVarP(&flagParallel, "parallel", "p", 4, "Maximum concurrent lookups")
}

// getColorMode returns the color mode based on flag
func getColorMode() output.ColorMode {
	return output.ParseColorMode(flagColor)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive train lookup",
	Long: `Launch the full-screen train lookup.

Keys:
  enter        search (in the input or on the button)
  space        search (on the button)
  tab          switch between input and button
  esc          back
  ctrl+c       quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.New(a.client,
		tui.WithLogger(a.log),
		tui.WithObserver(a.metrics),
		tui.WithTimeout(a.cfg.Timeout),
	)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached responses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.store == nil {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Caching is disabled")
			return nil
		}
		n, err := a.store.Clear()
		if err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached responses\n", n)
		return nil
	},
}
