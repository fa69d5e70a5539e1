package verify

import (
	"fmt"

	"github.com/joshuapare/blockmem/memory/alloc"
)

// ValidationError describes the first invariant a layout violates.
type ValidationError struct {
	Type    string
	Message string
	Index   int
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s at block %d: %s", e.Type, e.Index, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates all layout invariants in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(blocks []alloc.Block, capacity int) error {
	checks := []func() error{
		func() error { return NonEmpty(blocks) },
		func() error { return PositiveSizes(blocks) },
		func() error { return Origin(blocks) },
		func() error { return Contiguity(blocks) },
		func() error { return Coverage(blocks, capacity) },
		func() error { return Coalesced(blocks) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// NonEmpty validates that the layout holds at least one block.
func NonEmpty(blocks []alloc.Block) error {
	if len(blocks) == 0 {
		return &ValidationError{Type: "NonEmpty", Message: "no blocks", Index: -1}
	}
	return nil
}

// PositiveSizes validates that no block is empty or negative.
func PositiveSizes(blocks []alloc.Block) error {
	for i, b := range blocks {
		if b.Size <= 0 {
			return &ValidationError{
				Type:    "PositiveSizes",
				Message: fmt.Sprintf("size %d is not positive", b.Size),
				Index:   i,
			}
		}
	}
	return nil
}

// Origin validates that the first block starts at address 0.
func Origin(blocks []alloc.Block) error {
	if len(blocks) > 0 && blocks[0].Start != 0 {
		return &ValidationError{
			Type:    "Origin",
			Message: fmt.Sprintf("first block starts at %d, expected 0", blocks[0].Start),
			Index:   0,
		}
	}
	return nil
}

// Contiguity validates that blocks neither overlap nor leave gaps.
func Contiguity(blocks []alloc.Block) error {
	for i := 1; i < len(blocks); i++ {
		prevEnd := blocks[i-1].End()
		if blocks[i].Start != prevEnd {
			kind := "gap"
			if blocks[i].Start < prevEnd {
				kind = "overlap"
			}
			return &ValidationError{
				Type:    "Contiguity",
				Message: fmt.Sprintf("%s: starts at %d, previous block ends at %d", kind, blocks[i].Start, prevEnd),
				Index:   i,
			}
		}
	}
	return nil
}

// Coverage validates that the layout ends exactly at capacity and that the
// block sizes sum to capacity.
func Coverage(blocks []alloc.Block, capacity int) error {
	if len(blocks) == 0 {
		return nil
	}
	last := len(blocks) - 1
	if end := blocks[last].End(); end != capacity {
		return &ValidationError{
			Type:    "Coverage",
			Message: fmt.Sprintf("last block ends at %d, capacity is %d", end, capacity),
			Index:   last,
		}
	}
	if total := TotalSize(blocks); total != capacity {
		return &ValidationError{
			Type:    "Coverage",
			Message: fmt.Sprintf("block sizes sum to %d, capacity is %d", total, capacity),
			Index:   -1,
		}
	}
	return nil
}

// Coalesced validates that no two adjacent blocks are both free.
func Coalesced(blocks []alloc.Block) error {
	for i := 1; i < len(blocks); i++ {
		if blocks[i-1].Free() && blocks[i].Free() {
			return &ValidationError{
				Type:    "Coalesced",
				Message: fmt.Sprintf("free blocks %s and %s are adjacent", blocks[i-1], blocks[i]),
				Index:   i,
			}
		}
	}
	return nil
}

// TotalSize returns the sum of all block sizes.
func TotalSize(blocks []alloc.Block) int {
	total := 0
	for _, b := range blocks {
		total += b.Size
	}
	return total
}
