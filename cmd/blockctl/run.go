package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/blockmem/memory/scenario"
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().BoolVar(&verifySteps, "verify", false, "Check layout invariants after every step")
	cmd.Flags().BoolVar(&printStats, "stats", false, "Print statistics after the last step")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Replay a scenario file",
		Long: `The run command replays the steps of a YAML scenario file.

A scenario names an optional capacity and a list of steps, each either an
inline step or a mapping:

  name: fragmentation
  capacity: 128
  steps:
    - first=30
    - {op: alloc, strategy: best, size: 20}
    - free=0
    - print
    - stats

Example:
  blockctl run scenario.yaml
  blockctl run scenario.yaml --verify --format map`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioFile(args)
		},
	}
	return cmd
}

func runScenarioFile(args []string) error {
	path := args[0]
	printVerbose("Loading scenario: %s\n", path)

	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}
	return runSimulation(simulation{
		Scenario: sc,
		Verify:   verifySteps,
		Stats:    printStats,
	})
}
