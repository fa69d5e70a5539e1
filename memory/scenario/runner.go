package scenario

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/blockmem/memory/alloc"
	"github.com/joshuapare/blockmem/memory/verify"
)

// Result records the outcome of one replayed step.
type Result struct {
	Index int // zero-based position in the step list
	Step  Step
	Start int // allocated start address, OpAlloc only
	Err   error
}

// OK reports whether the step succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Runner replays steps against an allocator.
//
// Allocation failures and rejected frees are recorded in the step's Result
// and do not stop the run. Hook errors and, with Verify set, invariant
// violations stop it.
type Runner struct {
	Alloc *alloc.BlockAllocator

	// Verify checks every layout invariant after each step.
	Verify bool

	// OnPrint receives the snapshot for each print step.
	OnPrint func(blocks []alloc.Block) error

	// OnStats receives counters and layout metrics for each stats step.
	OnStats func(st alloc.Stats, fs alloc.FragmentationStats) error

	// OnResult is called after every step.
	OnResult func(r Result) error

	Log *slog.Logger
}

// Run executes steps in order and returns one Result per executed step.
func (r *Runner) Run(steps []Step) ([]Result, error) {
	log := r.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	results := make([]Result, 0, len(steps))
	for i, step := range steps {
		res := Result{Index: i, Step: step}

		switch step.Op {
		case OpAlloc:
			res.Start, res.Err = r.Alloc.Alloc(step.Size, step.Strategy)
			if errors.Is(res.Err, alloc.ErrInvalidSize) || errors.Is(res.Err, alloc.ErrUnknownStrategy) {
				return results, fmt.Errorf("step %d (%s): %w", i+1, step, res.Err)
			}
		case OpFree:
			res.Err = r.Alloc.Free(step.Start)
		case OpPrint:
			if r.OnPrint != nil {
				if err := r.OnPrint(r.Alloc.Snapshot()); err != nil {
					return results, fmt.Errorf("step %d (%s): %w", i+1, step, err)
				}
			}
		case OpStats:
			if r.OnStats != nil {
				if err := r.OnStats(r.Alloc.Stats(), r.Alloc.Fragmentation()); err != nil {
					return results, fmt.Errorf("step %d (%s): %w", i+1, step, err)
				}
			}
		case OpReset:
			r.Alloc.Reset()
		default:
			return results, fmt.Errorf("step %d: %w: unknown op %q", i+1, ErrBadStep, step.Op)
		}

		if res.Err != nil {
			log.Info("step failed", "step", i+1, "op", step.String(), "err", res.Err)
		} else {
			log.Debug("step", "step", i+1, "op", step.String(), "blocks", r.Alloc.Len())
		}
		results = append(results, res)

		if r.Verify {
			if err := verify.AllInvariants(r.Alloc.Snapshot(), r.Alloc.Capacity()); err != nil {
				return results, fmt.Errorf("step %d (%s): %w", i+1, step, err)
			}
		}
		if r.OnResult != nil {
			if err := r.OnResult(res); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}
