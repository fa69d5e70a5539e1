package alloc

import "sync"

// Locked is a mutex-protected wrapper around BlockAllocator for hosts that
// share one allocator between goroutines. Every call holds the lock for the
// whole operation, so callers never observe a half-split or half-merged layout.
type Locked struct {
	mu sync.Mutex
	a  *BlockAllocator
}

// NewLocked wraps a.
func NewLocked(a *BlockAllocator) *Locked {
	return &Locked{a: a}
}

func (l *Locked) Alloc(size int, s Strategy) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Alloc(size, s)
}

func (l *Locked) Free(start int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Free(start)
}

func (l *Locked) Snapshot() []Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Snapshot()
}

// Stats returns a copy of the wrapped allocator's counters.
func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Stats()
}

// Fragmentation reports the wrapped allocator's current layout metrics.
func (l *Locked) Fragmentation() FragmentationStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Fragmentation()
}

// Reset returns the wrapped allocator to its initial state.
func (l *Locked) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Reset()
}
