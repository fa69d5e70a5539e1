// Package verify provides validation functions for block allocator layouts.
//
// # Overview
//
// The checks operate on a snapshot returned by alloc.BlockAllocator.Snapshot
// together with the allocator's capacity. They are used in tests and by
// blockctl's --verify flag to confirm that every operation leaves the layout
// well formed.
//
// Validation categories:
//   - NonEmpty: at least one block exists
//   - PositiveSizes: every block has Size > 0
//   - Origin: the first block starts at address 0
//   - Contiguity: each block starts where the previous one ends
//   - Coverage: the last block ends at capacity
//   - Coalesced: no two adjacent blocks are both free
//
// # Quick Start
//
//	if err := verify.AllInvariants(a.Snapshot(), a.Capacity()); err != nil {
//	    fmt.Printf("Validation failed: %v\n", err)
//	}
//
// Failures are reported as *ValidationError, carrying the check name and
// the index of the offending block (-1 when the failure is not tied to a
// single block).
package verify
