package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/blockmem/memory/alloc"
)

const (
	mapAllocated = '#'
	mapFree      = '.'
)

// printBlocksMap draws the address space as a single bar. Each cell shows
// the state of the block holding the cell's first unit.
//
//	[##############..........####....]  0 - 128 KB
//	Legend: # = Allocated, . = Free
func (p *Printer) printBlocksMap(blocks []alloc.Block) error {
	if len(blocks) == 0 {
		_, err := fmt.Fprintln(p.writer, "[]")
		return err
	}
	capacity := blocks[len(blocks)-1].End()
	cells := mapCells(blocks, capacity, min(p.opts.MapWidth, capacity))

	var sb strings.Builder
	sb.WriteByte('[')
	// one styled run per state change keeps colour escapes short
	for i := 0; i < len(cells); {
		j := i
		for j < len(cells) && cells[j] == cells[i] {
			j++
		}
		ch := string(mapFree)
		if cells[i] {
			ch = string(mapAllocated)
		}
		sb.WriteString(p.styled(cells[i], strings.Repeat(ch, j-i)))
		i = j
	}
	sb.WriteByte(']')

	_, err := fmt.Fprintf(p.writer, "%s  0 - %s\nLegend: %c = Allocated, %c = Free\n",
		sb.String(), p.units(capacity), mapAllocated, mapFree)
	return err
}

// mapCells returns, for each of width cells, whether the block covering the
// cell's first unit is allocated.
func mapCells(blocks []alloc.Block, capacity, width int) []bool {
	cells := make([]bool, width)
	bi := 0
	for cell := range width {
		unit := cell * capacity / width
		for bi < len(blocks)-1 && blocks[bi].End() <= unit {
			bi++
		}
		cells[cell] = blocks[bi].Allocated
	}
	return cells
}
