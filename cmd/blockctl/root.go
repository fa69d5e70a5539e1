package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/blockmem/internal/config"
	"github.com/joshuapare/blockmem/internal/logger"
)

var (
	// Global flags
	verbose        bool
	quiet          bool
	jsonOut        bool
	noColor        bool
	capacity       int
	lenientFree    bool
	snapshotFormat string

	// cfg is loaded once per invocation in PersistentPreRunE.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "blockctl",
	Short: "Simulate first-fit, next-fit and best-fit block allocation",
	Long: `blockctl drives a simulated linear memory space split into contiguous
blocks. Requests are placed with first-fit, next-fit or best-fit, freed by
start address, and adjacent free blocks are merged after every free.

Settings come from ~/.config/blockctl.yaml (or BLOCKCTL_CONFIG_FILE),
then BLOCKCTL_* environment variables, then flags.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		IntVarP(&capacity, "capacity", "c", 0, "Total units managed (default from config, 128)")
	rootCmd.PersistentFlags().
		BoolVar(&lenientFree, "lenient-free", false, "Silently ignore frees of unknown or free addresses")
	rootCmd.PersistentFlags().
		StringVarP(&snapshotFormat, "format", "f", "", "Snapshot format: text, json (one report, as --json) or map")
}

// setup loads configuration, applies flags on top and starts logging.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("capacity") {
		c.Capacity = capacity
	}
	if flags.Changed("lenient-free") {
		c.LenientFree = lenientFree
	}
	if flags.Changed("format") {
		c.Format = snapshotFormat
	}
	if verbose {
		c.LogLevel = "debug"
	}
	if err := c.Validate(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Options{
		Enabled: verbose || c.LogFile != "",
		Level:   level,
		JSON:    c.LogFormat == "json",
		File:    c.LogFile,
	}); err != nil {
		return fmt.Errorf("failed to start logging: %w", err)
	}

	cfg = c
	return nil
}

func execute() {
	err := rootCmd.Execute()
	_ = logger.Close()
	if err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
