package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/blockmem/internal/logger"
	"github.com/joshuapare/blockmem/memory/alloc"
	"github.com/joshuapare/blockmem/memory/printer"
	"github.com/joshuapare/blockmem/memory/scenario"
)

// Shared flags for commands that replay steps
var (
	verifySteps bool
	printStats  bool
)

// simulation is one replay: a scenario plus per-command switches.
type simulation struct {
	scenario.Scenario

	// Verify checks layout invariants after every step.
	Verify bool

	// Stats prints counters and layout metrics after the last step.
	Stats bool
}

// jsonStep is one step in --json output.
type jsonStep struct {
	Step   string        `json:"step"`
	OK     bool          `json:"ok"`
	Start  *int          `json:"start,omitempty"`
	Error  string        `json:"error,omitempty"`
	Blocks []alloc.Block `json:"blocks,omitempty"`
}

// jsonReport is the whole --json document.
type jsonReport struct {
	Name     string                   `json:"name,omitempty"`
	Capacity int                      `json:"capacity"`
	Steps    []jsonStep               `json:"steps"`
	Final    []alloc.Block            `json:"final"`
	Layout   alloc.FragmentationStats `json:"layout"`
	Stats    *alloc.Stats             `json:"stats,omitempty"`
}

// effectiveCapacity applies flag > scenario > config precedence.
func effectiveCapacity(sc scenario.Scenario) int {
	if rootCmd.PersistentFlags().Changed("capacity") || sc.Capacity == 0 {
		return cfg.Capacity
	}
	return sc.Capacity
}

func runSimulation(sim simulation) error {
	size := effectiveCapacity(sim.Scenario)
	opts := cfg.AllocOptions()
	opts.LenientFree = opts.LenientFree || sim.LenientFree

	a, err := alloc.New(size, opts)
	if err != nil {
		return err
	}
	logger.Debug("simulation start", "name", sim.Name, "capacity", size, "steps", len(sim.Steps))

	// one report document even when several steps print
	if jsonOut || cfg.Format == string(printer.FormatJSON) {
		return runJSON(a, sim)
	}
	return runText(a, sim)
}

func runText(a *alloc.BlockAllocator, sim simulation) error {
	color := !noColor && isTTY()
	p := printer.New(os.Stdout, cfg.PrinterOptions(color))

	shown := 0
	separate := func() {
		if shown > 0 {
			printInfo("\n")
		}
		shown++
	}

	r := &scenario.Runner{
		Alloc:  a,
		Verify: sim.Verify,
		Log:    logger.L,
		OnPrint: func(blocks []alloc.Block) error {
			if quiet {
				return nil
			}
			separate()
			return p.PrintBlocks(blocks)
		},
		OnStats: func(st alloc.Stats, fs alloc.FragmentationStats) error {
			if quiet {
				return nil
			}
			separate()
			return p.PrintStats(st, fs)
		},
		OnResult: func(res scenario.Result) error {
			switch {
			case res.Err != nil:
				printInfo("%s: %v\n", res.Step, res.Err)
			case res.Step.Op == scenario.OpAlloc:
				printVerbose("%s -> start %d\n", res.Step, res.Start)
			case res.Step.Op == scenario.OpFree:
				printVerbose("%s -> %d blocks\n", res.Step, a.Len())
			}
			return nil
		},
	}

	if _, err := r.Run(sim.Steps); err != nil {
		return err
	}

	if !quiet && shown == 0 {
		separate()
		if err := p.PrintBlocks(a.Snapshot()); err != nil {
			return err
		}
	}
	if sim.Stats && !quiet {
		separate()
		return p.PrintStats(a.Stats(), a.Fragmentation())
	}
	return nil
}

func runJSON(a *alloc.BlockAllocator, sim simulation) error {
	report := jsonReport{
		Name:     sim.Name,
		Capacity: a.Capacity(),
		Steps:    make([]jsonStep, 0, len(sim.Steps)),
	}

	var pending []alloc.Block
	r := &scenario.Runner{
		Alloc:  a,
		Verify: sim.Verify,
		Log:    logger.L,
		OnPrint: func(blocks []alloc.Block) error {
			pending = blocks
			return nil
		},
		OnResult: func(res scenario.Result) error {
			js := jsonStep{Step: res.Step.String(), OK: res.OK(), Blocks: pending}
			pending = nil
			if res.Err != nil {
				js.Error = res.Err.Error()
			} else if res.Step.Op == scenario.OpAlloc {
				start := res.Start
				js.Start = &start
			}
			report.Steps = append(report.Steps, js)
			return nil
		},
	}

	if _, err := r.Run(sim.Steps); err != nil {
		return err
	}

	report.Final = a.Snapshot()
	report.Layout = a.Fragmentation()
	if sim.Stats {
		st := a.Stats()
		report.Stats = &st
	}
	if err := printJSON(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
