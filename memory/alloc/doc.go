// Package alloc provides block allocation over a fixed, linear address space.
//
// # Overview
//
// The managed space [0, capacity) is always covered by an ordered slice of
// contiguous blocks, each either free or allocated. Allocation splits a free
// block into an allocated prefix and an optional free remainder; freeing a
// block merges it with any free neighbours, so no two adjacent blocks are
// ever both free once Free returns.
//
// Addresses and sizes are abstract units. No bytes are stored.
//
// # Strategies
//
// Three placement strategies are supported:
//
//   - FirstFit: the lowest-addressed free block large enough
//   - NextFit: like FirstFit, but the scan starts at the block last placed
//     by NextFit and wraps around the end of the slice
//   - BestFit: the smallest free block large enough, lowest address on ties
//
// # Usage Example
//
//	a, err := alloc.New(128, nil)
//	if err != nil {
//	    return err
//	}
//
//	start, err := a.AllocFirstFit(30)
//	if errors.Is(err, alloc.ErrNoSpace) {
//	    // no free block can hold 30 units
//	}
//
//	// Later, release it by start address
//	err = a.Free(start)
//
// # Errors
//
// Running out of room is an ordinary outcome reported as ErrNoSpace. A
// request for zero or negative units is rejected with ErrInvalidSize. Free
// reports ErrBadAddress for an address that is not a block start and
// ErrNotAllocated for a block that is already free; Options.LenientFree
// turns both into silent no-ops. None of these errors change the layout.
//
// # Next-fit Cursor
//
// The cursor is the index of the block that received the most recent
// next-fit allocation. First-fit and best-fit never move it. Merges can leave
// it pointing past the end of the slice or at a different block; the next
// scan simply starts at cursor modulo the block count.
//
// # Concurrency
//
// BlockAllocator has no internal locking. Wrap it with NewLocked when it is
// shared between goroutines.
package alloc
