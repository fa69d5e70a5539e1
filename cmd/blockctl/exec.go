package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/blockmem/memory/scenario"
)

func init() {
	cmd := newExecCmd()
	cmd.Flags().BoolVar(&verifySteps, "verify", false, "Check layout invariants after every step")
	cmd.Flags().BoolVar(&printStats, "stats", false, "Print statistics after the last step")
	rootCmd.AddCommand(cmd)
}

func newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <step>...",
		Short: "Replay steps given on the command line",
		Long: `The exec command replays inline steps in order on a fresh allocator.

Steps:
  first=N | next=N | best=N   allocate N units with that strategy
  alloc=N | N                 allocate N units with the configured strategy
  free=ADDR                   free the block starting at ADDR
  print | stats | reset

The final layout is printed when no step prints anything.

Example:
  blockctl exec first=30 next=50 best=20 print free=0 print
  BLOCKCTL_STRATEGY=best blockctl exec 40 10 15 free=0 12`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(args)
		},
	}
	return cmd
}

func runExec(args []string) error {
	steps, err := scenario.ParseSteps(expandDefaultStrategy(args))
	if err != nil {
		return err
	}
	return runSimulation(simulation{
		Scenario: scenario.Scenario{Steps: steps},
		Verify:   verifySteps,
		Stats:    printStats,
	})
}

// expandDefaultStrategy rewrites "N" and "alloc=N" to "<strategy>=N" using
// the configured strategy.
func expandDefaultStrategy(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		a := strings.TrimSpace(arg)
		if n, ok := strings.CutPrefix(a, "alloc="); ok {
			a = n
		}
		if _, err := strconv.Atoi(a); err == nil {
			out[i] = cfg.Strategy + "=" + a
			continue
		}
		out[i] = arg
	}
	return out
}
