package scenario

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blockmem/memory/alloc"
	"github.com/joshuapare/blockmem/memory/verify"
)

func newRunner(t *testing.T, capacity int, opts *alloc.Options) *Runner {
	t.Helper()
	a, err := alloc.New(capacity, opts)
	require.NoError(t, err)
	return &Runner{Alloc: a, Verify: true}
}

// TestRunner_Demo replays the demonstration sequence and checks both printed
// snapshots.
func TestRunner_Demo(t *testing.T) {
	sc := Demo()
	r := newRunner(t, sc.Capacity, nil)

	var printed [][]alloc.Block
	r.OnPrint = func(blocks []alloc.Block) error {
		printed = append(printed, blocks)
		return nil
	}

	results, err := r.Run(sc.Steps)
	require.NoError(t, err)
	require.Len(t, results, 6)
	for _, res := range results {
		require.True(t, res.OK(), "%s: %v", res.Step, res.Err)
	}
	assert.Equal(t, []int{0, 30, 80}, []int{results[0].Start, results[1].Start, results[2].Start})

	require.Len(t, printed, 2)
	assert.Equal(t, []alloc.Block{
		{Start: 0, Size: 30, Allocated: true},
		{Start: 30, Size: 50, Allocated: true},
		{Start: 80, Size: 20, Allocated: true},
		{Start: 100, Size: 28},
	}, printed[0])
	assert.Equal(t, []alloc.Block{
		{Start: 0, Size: 30},
		{Start: 30, Size: 50, Allocated: true},
		{Start: 80, Size: 20, Allocated: true},
		{Start: 100, Size: 28},
	}, printed[1])
}

// TestRunner_RecordsFailures verifies that running out of space and bad
// frees are recorded per step without stopping the run.
func TestRunner_RecordsFailures(t *testing.T) {
	r := newRunner(t, 10, nil)

	steps, err := ParseSteps([]string{"first=8", "best=4", "free=3", "free=0", "free=0", "next=10"})
	require.NoError(t, err)

	results, err := r.Run(steps)
	require.NoError(t, err)
	require.Len(t, results, 6)

	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, alloc.ErrNoSpace)
	assert.ErrorIs(t, results[2].Err, alloc.ErrBadAddress)
	assert.NoError(t, results[3].Err)
	assert.ErrorIs(t, results[4].Err, alloc.ErrNotAllocated)
	assert.NoError(t, results[5].Err)
	assert.Equal(t, []alloc.Block{{Start: 0, Size: 10, Allocated: true}}, r.Alloc.Snapshot())
}

func TestRunner_LenientFree(t *testing.T) {
	r := newRunner(t, 10, &alloc.Options{LenientFree: true})

	results, err := r.Run([]Step{Free(3), Free(0)})
	require.NoError(t, err)
	for _, res := range results {
		assert.NoError(t, res.Err)
	}
}

func TestRunner_AbortsOnInvalidStep(t *testing.T) {
	r := newRunner(t, 10, nil)

	results, err := r.Run([]Step{Alloc(alloc.FirstFit, 2), Alloc(alloc.FirstFit, 0), Print()})

	require.ErrorIs(t, err, alloc.ErrInvalidSize)
	require.Contains(t, err.Error(), "step 2")
	require.Len(t, results, 1)
}

func TestRunner_StatsAndReset(t *testing.T) {
	r := newRunner(t, 32, nil)

	var seen []alloc.FragmentationStats
	r.OnStats = func(_ alloc.Stats, fs alloc.FragmentationStats) error {
		seen = append(seen, fs)
		return nil
	}

	steps, err := ParseSteps([]string{"first=8", "stats", "reset", "stats"})
	require.NoError(t, err)
	_, err = r.Run(steps)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, 8, seen[0].UsedUnits)
	assert.Equal(t, 0, seen[1].UsedUnits)
	assert.Equal(t, 1, seen[1].Blocks)
}

func TestRunner_HookErrorStops(t *testing.T) {
	r := newRunner(t, 32, nil)
	boom := errors.New("boom")
	calls := 0
	r.OnResult = func(Result) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	}

	results, err := r.Run([]Step{Alloc(alloc.FirstFit, 1), Alloc(alloc.FirstFit, 1), Alloc(alloc.FirstFit, 1)})

	require.ErrorIs(t, err, boom)
	require.Len(t, results, 2)
}

// TestRunner_PrintHookGetsCopy verifies a print hook cannot damage the
// allocator through the snapshot it receives.
func TestRunner_PrintHookGetsCopy(t *testing.T) {
	r := newRunner(t, 16, nil)
	r.OnPrint = func(blocks []alloc.Block) error {
		blocks[0].Size = 1
		return nil
	}

	_, err := r.Run([]Step{Alloc(alloc.FirstFit, 4), Print(), Alloc(alloc.BestFit, 4)})
	require.NoError(t, err)
	require.NoError(t, verify.AllInvariants(r.Alloc.Snapshot(), 16))
}
