package printer

import (
	"encoding/json"

	"github.com/joshuapare/blockmem/memory/alloc"
)

// jsonStats is the JSON shape of PrintStats output.
type jsonStats struct {
	Capacity              int     `json:"capacity"`
	UsedUnits             int     `json:"used_units"`
	FreeUnits             int     `json:"free_units"`
	LargestFree           int     `json:"largest_free"`
	Blocks                int     `json:"blocks"`
	AllocatedBlocks       int     `json:"allocated_blocks"`
	FreeBlocks            int     `json:"free_blocks"`
	Utilization           float64 `json:"utilization"`
	ExternalFragmentation float64 `json:"external_fragmentation"`
	AllocCalls            int     `json:"alloc_calls"`
	AllocFailures         int     `json:"alloc_failures"`
	FirstFitHits          int     `json:"first_fit_hits"`
	NextFitHits           int     `json:"next_fit_hits"`
	BestFitHits           int     `json:"best_fit_hits"`
	FreeCalls             int     `json:"free_calls"`
	FreeMisses            int     `json:"free_misses"`
	SplitCount            int     `json:"splits"`
	MergeCount            int     `json:"merges"`
	BlocksScanned         int     `json:"blocks_scanned"`
}

func (p *Printer) printBlocksJSON(blocks []alloc.Block) error {
	if blocks == nil {
		blocks = []alloc.Block{}
	}
	return p.encode(blocks)
}

func (p *Printer) printStatsJSON(st alloc.Stats, fs alloc.FragmentationStats) error {
	return p.encode(jsonStats{
		Capacity:              fs.Capacity,
		UsedUnits:             fs.UsedUnits,
		FreeUnits:             fs.FreeUnits,
		LargestFree:           fs.LargestFree,
		Blocks:                fs.Blocks,
		AllocatedBlocks:       fs.AllocatedBlocks,
		FreeBlocks:            fs.FreeBlocks,
		Utilization:           fs.Utilization,
		ExternalFragmentation: fs.ExternalFragmentation,
		AllocCalls:            st.AllocCalls,
		AllocFailures:         st.AllocFailures,
		FirstFitHits:          st.FirstFitHits,
		NextFitHits:           st.NextFitHits,
		BestFitHits:           st.BestFitHits,
		FreeCalls:             st.FreeCalls,
		FreeMisses:            st.FreeMisses,
		SplitCount:            st.SplitCount,
		MergeCount:            st.MergeCount,
		BlocksScanned:         st.BlocksScanned,
	})
}

func (p *Printer) encode(v any) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
