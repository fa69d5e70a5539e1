package printer

import (
	"fmt"

	"github.com/joshuapare/blockmem/memory/alloc"
)

// printBlocksText prints one line per block:
//
//	Start: 0 KB, Size: 30 KB, Allocated
func (p *Printer) printBlocksText(blocks []alloc.Block) error {
	for _, b := range blocks {
		state := "Free"
		if b.Allocated {
			state = "Allocated"
		}
		_, err := fmt.Fprintf(p.writer, "Start: %s, Size: %s, %s\n",
			p.units(b.Start), p.units(b.Size), p.styled(b.Allocated, state))
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printStatsText(st alloc.Stats, fs alloc.FragmentationStats) error {
	lines := []struct {
		label string
		value string
	}{
		{"Capacity", p.units(fs.Capacity)},
		{"Used", p.units(fs.UsedUnits)},
		{"Free", p.units(fs.FreeUnits)},
		{"Largest free block", p.units(fs.LargestFree)},
		{"Blocks", p.num.Sprintf("%d (%d allocated, %d free)", fs.Blocks, fs.AllocatedBlocks, fs.FreeBlocks)},
		{"Utilization", fmt.Sprintf("%.1f%%", fs.Utilization*100)},
		{"External fragmentation", fmt.Sprintf("%.1f%%", fs.ExternalFragmentation*100)},
		{"Allocations", p.num.Sprintf("%d (%d failed)", st.AllocCalls, st.AllocFailures)},
		{"  first/next/best", p.num.Sprintf("%d/%d/%d", st.FirstFitHits, st.NextFitHits, st.BestFitHits)},
		{"Frees", p.num.Sprintf("%d (%d missed)", st.FreeCalls, st.FreeMisses)},
		{"Splits", p.num.Sprintf("%d", st.SplitCount)},
		{"Merges", p.num.Sprintf("%d", st.MergeCount)},
		{"Blocks scanned", p.num.Sprintf("%d", st.BlocksScanned)},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(p.writer, "%-24s %s\n", l.label+":", l.value); err != nil {
			return err
		}
	}
	return nil
}
