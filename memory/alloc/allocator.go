package alloc

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
)

// DefaultCapacity is the capacity used by the demonstration driver.
const DefaultCapacity = 128

// Options configures a BlockAllocator.
type Options struct {
	// LenientFree makes Free silently ignore addresses that are not the start
	// of an allocated block instead of returning ErrBadAddress or ErrNotAllocated.
	// Default: false
	LenientFree bool

	// Logger receives debug records for splits, merges and failed requests.
	// Default: discard
	Logger *slog.Logger
}

// DefaultOptions returns the options used when New is given nil.
func DefaultOptions() Options {
	return Options{}
}

// BlockAllocator manages an ordered, contiguous sequence of blocks covering
// [0, capacity). It is not safe for concurrent use; see Locked.
//
// Invariants held between calls:
//   - blocks[0].Start == 0 and blocks[len-1].End() == capacity
//   - blocks[i].End() == blocks[i+1].Start
//   - no two adjacent blocks are both free
//   - len(blocks) >= 1
type BlockAllocator struct {
	capacity int
	blocks   []Block

	// cursor is the index of the block most recently placed by next-fit.
	// It is advisory and may be stale after a merge; readers reduce it
	// modulo len(blocks).
	cursor int

	lenientFree bool
	log         *slog.Logger

	stats Stats
}

// New creates an allocator holding a single free block spanning capacity units.
//
// Parameters:
//   - capacity: total units managed, fixed for the allocator's lifetime
//   - opts: behaviour options (use nil for DefaultOptions)
func New(capacity int, opts *Options) (*BlockAllocator, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	a := &BlockAllocator{
		capacity:    capacity,
		lenientFree: opts.LenientFree,
		log:         log,
	}
	a.Reset()
	return a, nil
}

// Reset returns the allocator to its initial state: one free block, cursor
// at zero, statistics cleared.
func (a *BlockAllocator) Reset() {
	a.blocks = append(a.blocks[:0], Block{Start: 0, Size: a.capacity})
	a.cursor = 0
	a.stats = Stats{}
}

// Capacity returns the total number of units managed.
func (a *BlockAllocator) Capacity() int { return a.capacity }

// Cursor returns the next-fit resume index. The value may exceed the
// current block count after merges.
func (a *BlockAllocator) Cursor() int { return a.cursor }

// Len returns the number of blocks, free and allocated.
func (a *BlockAllocator) Len() int { return len(a.blocks) }

// Snapshot returns a copy of the block sequence in address order.
func (a *BlockAllocator) Snapshot() []Block {
	return slices.Clone(a.blocks)
}

// Alloc places size units using strategy s.
func (a *BlockAllocator) Alloc(size int, s Strategy) (int, error) {
	switch s {
	case FirstFit:
		return a.AllocFirstFit(size)
	case NextFit:
		return a.AllocNextFit(size)
	case BestFit:
		return a.AllocBestFit(size)
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(s))
}

// AllocFirstFit allocates from the lowest-addressed free block that can hold size units.
func (a *BlockAllocator) AllocFirstFit(size int) (int, error) {
	if err := a.begin(size); err != nil {
		return 0, err
	}

	for i := range a.blocks {
		a.stats.BlocksScanned++
		if a.fits(i, size) {
			a.stats.FirstFitHits++
			return a.place(i, size), nil
		}
	}
	return 0, a.fail(FirstFit, size)
}

// AllocNextFit scans circularly from the cursor and allocates from the first
// free block that can hold size units. On success the cursor is set to the
// index of the allocated block.
func (a *BlockAllocator) AllocNextFit(size int) (int, error) {
	if err := a.begin(size); err != nil {
		return 0, err
	}

	n := len(a.blocks)
	from := a.cursor % n
	for step := range n {
		i := (from + step) % n
		a.stats.BlocksScanned++
		if a.fits(i, size) {
			a.stats.NextFitHits++
			start := a.place(i, size)
			a.cursor = i
			return start, nil
		}
	}
	return 0, a.fail(NextFit, size)
}

// AllocBestFit allocates from the smallest free block that can hold size
// units. Among equal sizes the lowest address wins.
func (a *BlockAllocator) AllocBestFit(size int) (int, error) {
	if err := a.begin(size); err != nil {
		return 0, err
	}

	best := -1
	for i := range a.blocks {
		a.stats.BlocksScanned++
		if !a.fits(i, size) {
			continue
		}
		if best < 0 || a.blocks[i].Size < a.blocks[best].Size {
			best = i
			if a.blocks[i].Size == size {
				// exact fit cannot be beaten
				break
			}
		}
	}
	if best < 0 {
		return 0, a.fail(BestFit, size)
	}
	a.stats.BestFitHits++
	return a.place(best, size), nil
}

// Free releases the block starting at start and merges it with free neighbours.
//
// Unless LenientFree is set, an address that is not a block start returns
// ErrBadAddress and a block that is already free returns ErrNotAllocated.
// Neither case changes the layout.
func (a *BlockAllocator) Free(start int) error {
	a.stats.FreeCalls++

	i, ok := a.indexOf(start)
	if !ok {
		a.stats.FreeMisses++
		a.log.Debug("free: unknown address", "start", start)
		if a.lenientFree {
			return nil
		}
		return fmt.Errorf("%w: %d", ErrBadAddress, start)
	}

	b := &a.blocks[i]
	if !b.Allocated {
		a.stats.FreeMisses++
		a.log.Debug("free: block already free", "start", start, "size", b.Size)
		if a.lenientFree {
			return nil
		}
		return fmt.Errorf("%w: %d", ErrNotAllocated, start)
	}

	b.Allocated = false
	a.stats.UnitsFreed += int64(b.Size)
	a.log.Debug("free", "start", start, "size", b.Size)

	a.mergeFree()
	return nil
}

// begin validates a request and counts it.
func (a *BlockAllocator) begin(size int) error {
	a.stats.AllocCalls++
	if size <= 0 {
		a.stats.AllocFailures++
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return nil
}

func (a *BlockAllocator) fail(s Strategy, size int) error {
	a.stats.AllocFailures++
	a.log.Debug("alloc: no fit", "strategy", s.String(), "size", size, "blocks", len(a.blocks))
	return fmt.Errorf("%w: %s-fit request for %d units", ErrNoSpace, s, size)
}

func (a *BlockAllocator) fits(i, size int) bool {
	b := a.blocks[i]
	return !b.Allocated && b.Size >= size
}

// place splits the free block at index i into an allocated prefix of size
// units and, when room remains, a free suffix inserted right after it.
// The prefix keeps its start address.
func (a *BlockAllocator) place(i, size int) int {
	b := a.blocks[i]
	if rem := b.Size - size; rem > 0 {
		a.stats.SplitCount++
		a.blocks = slices.Insert(a.blocks, i+1, Block{Start: b.Start + size, Size: rem})
		a.log.Debug("alloc: split", "start", b.Start, "size", size, "remainder", rem)
	}
	a.blocks[i] = Block{Start: b.Start, Size: size, Allocated: true}
	a.stats.UnitsAllocated += int64(size)
	return b.Start
}

// mergeFree folds every run of adjacent free blocks into its leftmost block.
// It returns the number of blocks removed; a second call returns zero.
func (a *BlockAllocator) mergeFree() int {
	merged := 0
	for i := 0; i < len(a.blocks)-1; {
		left, right := a.blocks[i], a.blocks[i+1]
		if left.Allocated || right.Allocated {
			i++
			continue
		}
		a.blocks[i].Size += right.Size
		a.blocks = slices.Delete(a.blocks, i+1, i+2)
		merged++
		a.log.Debug("merge", "start", left.Start, "size", a.blocks[i].Size)
	}
	a.stats.MergeCount += merged
	return merged
}

func (a *BlockAllocator) indexOf(start int) (int, bool) {
	return slices.BinarySearchFunc(a.blocks, start, func(b Block, target int) int {
		return b.Start - target
	})
}
