package alloc

// Stats holds allocator counters for testing and instrumentation.
type Stats struct {
	AllocCalls     int   `json:"alloc_calls"`     // Total allocation requests, including rejected ones
	AllocFailures  int   `json:"alloc_failures"`  // Requests that returned an error
	FirstFitHits   int   `json:"first_fit_hits"`  // Successful first-fit placements
	NextFitHits    int   `json:"next_fit_hits"`   // Successful next-fit placements
	BestFitHits    int   `json:"best_fit_hits"`   // Successful best-fit placements
	FreeCalls      int   `json:"free_calls"`      // Total Free() calls
	FreeMisses     int   `json:"free_misses"`     // Free() calls that matched no allocated block
	SplitCount     int   `json:"splits"`          // Allocations that left a free remainder
	MergeCount     int   `json:"merges"`          // Blocks absorbed by a free left neighbour
	UnitsAllocated int64 `json:"units_allocated"` // Total units handed out
	UnitsFreed     int64 `json:"units_freed"`     // Total units returned
	BlocksScanned  int   `json:"blocks_scanned"`  // Blocks inspected by all searches
}

// Stats returns a copy of the allocator counters.
func (a *BlockAllocator) Stats() Stats {
	return a.stats
}

// FragmentationStats describes how the managed space is currently divided.
type FragmentationStats struct {
	Capacity        int `json:"capacity"`
	UsedUnits       int `json:"used_units"`
	FreeUnits       int `json:"free_units"`
	Blocks          int `json:"blocks"`
	AllocatedBlocks int `json:"allocated_blocks"`
	FreeBlocks      int `json:"free_blocks"`
	LargestFree     int `json:"largest_free"` // Largest request that can currently succeed

	// Utilization is UsedUnits/Capacity (0.0 to 1.0).
	Utilization float64 `json:"utilization"`

	// ExternalFragmentation is 1 - LargestFree/FreeUnits: zero when all free
	// space is one block, approaching one as free space scatters.
	ExternalFragmentation float64 `json:"external_fragmentation"`
}

// Fragmentation scans the block sequence and reports its current shape.
func (a *BlockAllocator) Fragmentation() FragmentationStats {
	return Measure(a.blocks, a.capacity)
}

// Measure computes FragmentationStats for an arbitrary snapshot.
func Measure(blocks []Block, capacity int) FragmentationStats {
	fs := FragmentationStats{Capacity: capacity, Blocks: len(blocks)}
	for _, b := range blocks {
		if b.Allocated {
			fs.AllocatedBlocks++
			fs.UsedUnits += b.Size
			continue
		}
		fs.FreeBlocks++
		fs.FreeUnits += b.Size
		fs.LargestFree = max(fs.LargestFree, b.Size)
	}
	if capacity > 0 {
		fs.Utilization = float64(fs.UsedUnits) / float64(capacity)
	}
	if fs.FreeUnits > 0 {
		fs.ExternalFragmentation = 1 - float64(fs.LargestFree)/float64(fs.FreeUnits)
	}
	return fs
}
