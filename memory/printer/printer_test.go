package printer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blockmem/memory/alloc"
)

func demoBlocks() []alloc.Block {
	return []alloc.Block{
		{Start: 0, Size: 30, Allocated: true},
		{Start: 30, Size: 50, Allocated: true},
		{Start: 80, Size: 20, Allocated: true},
		{Start: 100, Size: 28},
	}
}

func TestPrinter_PrintBlocks_Text(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, DefaultOptions())

	require.NoError(t, p.PrintBlocks(demoBlocks()))

	want := "Start: 0 KB, Size: 30 KB, Allocated\n" +
		"Start: 30 KB, Size: 50 KB, Allocated\n" +
		"Start: 80 KB, Size: 20 KB, Allocated\n" +
		"Start: 100 KB, Size: 28 KB, Free\n"
	require.Equal(t, want, buf.String())
}

func TestPrinter_PrintBlocks_TextGroupsDigits(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Unit = ""
	p := New(&buf, opts)

	require.NoError(t, p.PrintBlocks([]alloc.Block{{Start: 0, Size: 1 << 20}}))

	require.Equal(t, "Start: 0, Size: 1,048,576, Free\n", buf.String())
}

// TestPrinter_PrintBlocks_Color verifies coloured output still carries the
// block states; escape codes depend on the writer's colour profile.
func TestPrinter_PrintBlocks_Color(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Color = true
	p := New(&buf, opts)

	require.NoError(t, p.PrintBlocks(demoBlocks()))

	out := buf.String()
	require.Contains(t, out, "Allocated")
	require.Contains(t, out, "Free")
	require.Contains(t, out, "Start: 100 KB, Size: 28 KB, ")
}

func TestPrinter_PrintBlocks_JSON(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	p := New(&buf, opts)

	require.NoError(t, p.PrintBlocks(demoBlocks()))

	var got []alloc.Block
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, demoBlocks(), got)
	require.Contains(t, buf.String(), `"allocated": true`)
}

func TestPrinter_PrintBlocks_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, Options{Format: FormatJSON})

	require.NoError(t, p.PrintBlocks(nil))
	require.Equal(t, "[]\n", buf.String())
}

func TestPrinter_PrintBlocks_Map(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatMap
	p := New(&buf, opts)

	blocks := []alloc.Block{{Start: 0, Size: 3, Allocated: true}, {Start: 3, Size: 5}}
	require.NoError(t, p.PrintBlocks(blocks))

	require.Equal(t, "[###.....]  0 - 8 KB\nLegend: # = Allocated, . = Free\n", buf.String())
}

func TestPrinter_PrintBlocks_MapScaled(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, Options{Format: FormatMap, Unit: "KB", MapWidth: 16})

	// 128 units over 16 cells: 8 units per cell
	require.NoError(t, p.PrintBlocks(demoBlocks()))

	require.Equal(t, "[#############...]  0 - 128 KB\nLegend: # = Allocated, . = Free\n", buf.String())
}

func TestMapCells(t *testing.T) {
	blocks := []alloc.Block{
		{Start: 0, Size: 2},
		{Start: 2, Size: 2, Allocated: true},
		{Start: 4, Size: 4},
	}
	require.Equal(t, []bool{false, false, true, true, false, false, false, false}, mapCells(blocks, 8, 8))
	require.Equal(t, []bool{false, true, false, false}, mapCells(blocks, 8, 4))
}

func TestPrinter_PrintStats_Text(t *testing.T) {
	a, err := alloc.New(128, nil)
	require.NoError(t, err)
	_, err = a.AllocFirstFit(30)
	require.NoError(t, err)
	_, err = a.AllocNextFit(50)
	require.NoError(t, err)
	require.NoError(t, a.Free(0))

	var buf bytes.Buffer
	p := New(&buf, DefaultOptions())
	require.NoError(t, p.PrintStats(a.Stats(), a.Fragmentation()))

	out := buf.String()
	require.Contains(t, out, "Capacity:                128 KB\n")
	require.Contains(t, out, "Used:                    50 KB\n")
	require.Contains(t, out, "Largest free block:      48 KB\n")
	require.Contains(t, out, "Blocks:                  3 (1 allocated, 2 free)\n")
	require.Contains(t, out, "External fragmentation:  38.5%\n")
	require.Contains(t, out, "first/next/best:       1/1/0\n")
}

func TestPrinter_PrintStats_JSON(t *testing.T) {
	a, err := alloc.New(64, nil)
	require.NoError(t, err)
	_, err = a.AllocBestFit(16)
	require.NoError(t, err)

	var buf bytes.Buffer
	p := New(&buf, Options{Format: FormatJSON})
	require.NoError(t, p.PrintStats(a.Stats(), a.Fragmentation()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.EqualValues(t, 64, got["capacity"])
	require.EqualValues(t, 16, got["used_units"])
	require.EqualValues(t, 1, got["best_fit_hits"])
	require.EqualValues(t, 1, got["splits"])
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"text", "json", "map"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		require.Equal(t, Format(name), f)
	}
	_, err := ParseFormat("reg")
	require.Error(t, err)
}
