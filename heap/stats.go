package heap

import (
	"strconv"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/paucazou/Little-GC/memutils"
	"golang.org/x/exp/slices"
)

func (h *Heap) sortedBlockIDs() []BlockID {
	ids := make([]BlockID, 0, h.blocks.Count())
	h.blocks.Iter(func(id BlockID, _ blockRecord) bool {
		ids = append(ids, id)
		return false
	})
	slices.Sort(ids)

	return ids
}

func printStatistics(json *jwriter.ObjectState, stats *memutils.DetailedStatistics) {
	json.Name("BlockCount").Int(stats.BlockCount)
	json.Name("BlockBytes").Int(stats.BlockBytes)
	json.Name("AllocationCount").Int(stats.AllocationCount)
	json.Name("FreeCount").Int(stats.FreeCount)
	json.Name("PeakBytes").Int(stats.PeakBytes)

	if stats.BlockCount > 0 {
		json.Name("BlockSizeMin").Int(stats.BlockSizeMin)
		json.Name("BlockSizeMax").Int(stats.BlockSizeMax)
	}
}

// BuildStatsString returns a JSON report of the heap. When detailed is set, the report includes
// one entry per live block, keyed by block id.
func (h *Heap) BuildStatsString(detailed bool) string {
	h.logger.Debug("Heap::BuildStatsString")

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	writer := jwriter.NewWriter()
	root := writer.Object()

	config := root.Name("Config").Object()
	config.Name("Flags").String(h.createFlags.String())
	config.Name("HeapSizeLimit").Int(h.sizeLimit)
	config.Name("MaxBlockCount").Int(h.maxBlockCount)
	config.Name("MinBlockAlignment").Int(int(h.alignment))
	config.End()

	var stats memutils.DetailedStatistics
	h.statisticsAfterLock(&stats)

	total := root.Name("Total").Object()
	printStatistics(&total, &stats)
	total.End()

	if detailed {
		blocks := root.Name("Blocks").Object()
		for _, id := range h.sortedBlockIDs() {
			record, _ := h.blocks.Get(id)

			blockObj := blocks.Name(strconv.FormatUint(uint64(id), 10)).Object()
			blockObj.Name("Size").Int(record.size)
			if record.typeName != "" {
				blockObj.Name("Type").String(record.typeName)
			}
			blockObj.End()
		}
		blocks.End()
	}

	root.End()

	return string(writer.Bytes())
}
