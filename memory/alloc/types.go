package alloc

import (
	"fmt"
	"strings"
)

// Block is a contiguous span [Start, Start+Size) of the managed space.
type Block struct {
	Start     int  `json:"start"`
	Size      int  `json:"size"`
	Allocated bool `json:"allocated"`
}

// End returns the first address past the block.
func (b Block) End() int { return b.Start + b.Size }

// Free reports whether the block is available for allocation.
func (b Block) Free() bool { return !b.Allocated }

func (b Block) String() string {
	state := "free"
	if b.Allocated {
		state = "allocated"
	}
	return fmt.Sprintf("{%d,%d,%s}", b.Start, b.Size, state)
}

// Strategy selects which free block receives an allocation.
type Strategy uint8

const (
	FirstFit Strategy = iota + 1
	NextFit
	BestFit
)

// Strategies lists the supported strategies in declaration order.
var Strategies = []Strategy{FirstFit, NextFit, BestFit}

func (s Strategy) String() string {
	switch s {
	case FirstFit:
		return "first"
	case NextFit:
		return "next"
	case BestFit:
		return "best"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// ParseStrategy accepts "first", "next" or "best" (case-insensitive), with
// or without a "-fit" suffix.
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(strings.TrimSuffix(n, "-fit"), "fit")
	switch n {
	case "first":
		return FirstFit, nil
	case "next":
		return NextFit, nil
	case "best":
		return BestFit, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Allocator defines the operations callers use to drive a block allocator.
//
// Implementations:
//   - BlockAllocator: single-threaded allocator over an ordered block slice
//   - Locked: mutex-protected wrapper around a BlockAllocator
type Allocator interface {
	// Alloc places size units using the given strategy and returns the start
	// address of the allocated block.
	Alloc(size int, s Strategy) (int, error)

	// Free releases the block starting at start and merges free neighbours.
	Free(start int) error

	// Snapshot returns a copy of the block sequence in address order.
	Snapshot() []Block
}
