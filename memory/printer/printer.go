package printer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/blockmem/memory/alloc"
)

const (
	DefaultUnit     = "KB"
	DefaultMapWidth = 64
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs one line per block.
	FormatText Format = "text"

	// FormatJSON outputs a JSON array of blocks.
	FormatJSON Format = "json"

	// FormatMap outputs a fixed-width bar of the address space.
	FormatMap Format = "map"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatText, FormatJSON, FormatMap:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or map)", name)
}

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json, map).
	// Default: FormatText
	Format Format

	// Unit is the label printed after addresses and sizes.
	// Default: "KB"
	Unit string

	// Color renders allocated and free blocks in different colours.
	// Default: false
	Color bool

	// MapWidth is the number of cells in the map bar. Capacities smaller
	// than MapWidth are drawn one cell per unit.
	// Default: 64
	MapWidth int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:   FormatText,
		Unit:     DefaultUnit,
		MapWidth: DefaultMapWidth,
	}
}

// Printer writes allocator snapshots and statistics.
type Printer struct {
	opts   Options
	writer io.Writer
	num    *message.Printer

	allocStyle lipgloss.Style
	freeStyle  lipgloss.Style
}

// New creates a new Printer writing to w.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintBlocks(a.Snapshot())
func New(w io.Writer, opts Options) *Printer {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.MapWidth <= 0 {
		opts.MapWidth = DefaultMapWidth
	}

	p := &Printer{
		opts:   opts,
		writer: w,
		num:    message.NewPrinter(language.English),
	}
	if opts.Color {
		r := lipgloss.NewRenderer(w)
		p.allocStyle = r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		p.freeStyle = r.NewStyle().Foreground(lipgloss.Color("10"))
	}
	return p
}

// PrintBlocks prints a snapshot in the configured format.
func (p *Printer) PrintBlocks(blocks []alloc.Block) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printBlocksJSON(blocks)
	case FormatMap:
		return p.printBlocksMap(blocks)
	default:
		return p.printBlocksText(blocks)
	}
}

// PrintStats prints counters and layout metrics in the configured format.
// The map format prints stats as text.
func (p *Printer) PrintStats(st alloc.Stats, fs alloc.FragmentationStats) error {
	if p.opts.Format == FormatJSON {
		return p.printStatsJSON(st, fs)
	}
	return p.printStatsText(st, fs)
}

// units formats n with digit grouping and the unit label.
func (p *Printer) units(n int) string {
	if p.opts.Unit == "" {
		return p.num.Sprintf("%d", n)
	}
	return p.num.Sprintf("%d %s", n, p.opts.Unit)
}

func (p *Printer) styled(allocated bool, s string) string {
	if !p.opts.Color {
		return s
	}
	if allocated {
		return p.allocStyle.Render(s)
	}
	return p.freeStyle.Render(s)
}
