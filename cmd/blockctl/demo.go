package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/blockmem/memory/scenario"
)

func init() {
	cmd := newDemoCmd()
	cmd.Flags().BoolVar(&verifySteps, "verify", false, "Check layout invariants after every step")
	cmd.Flags().BoolVar(&printStats, "stats", false, "Print statistics after the last step")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in demonstration sequence",
		Long: `The demo command allocates 30 units first-fit, 50 units next-fit and
20 units best-fit on a 128-unit space, prints the layout, frees the block
at address 0 and prints the layout again.

Example:
  blockctl demo
  blockctl demo --format map
  blockctl demo --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	return cmd
}

func runDemo() error {
	return runSimulation(simulation{
		Scenario: scenario.Demo(),
		Verify:   verifySteps,
		Stats:    printStats,
	})
}
