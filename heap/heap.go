package heap

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/paucazou/Little-GC/internal/utils"
	"github.com/paucazou/Little-GC/memutils"
	"golang.org/x/exp/slog"
)

type blockRecord struct {
	size     int
	typeName string
}

// Heap is the default Allocator. Storage itself comes from the Go runtime: the heap decides
// whether a block may be issued, enforces the configured limits, and keeps a table of every
// live block so that leaks and double frees can be detected.
type Heap struct {
	logger      *slog.Logger
	mutex       utils.OptionalRWMutex
	createFlags CreateFlags

	sizeLimit     int
	maxBlockCount int
	alignment     uint
	callbacks     *CallbackOptions

	nextID BlockID
	blocks *swiss.Map[BlockID, blockRecord]

	// Live blocks
	live memutils.Statistics
	// Lifetime counters
	allocationCount int
	freeCount       int
	peakBytes       int
}

var _ Allocator = &Heap{}

// Allocate approves a block of request.Size bytes, rounded up to the heap's alignment.
func (h *Heap) Allocate(request Request) (BlockID, error) {
	h.logger.Debug("Heap::Allocate", slog.Int("Size", request.Size), slog.String("Type", request.TypeName))

	if request.Size < 0 {
		return 0, errors.Newf("attempted to allocate a block with negative size %d", request.Size)
	}
	if request.Size > math.MaxInt-int(h.alignment) {
		return 0, errors.Wrapf(memutils.OutOfMemoryError, "block size %d cannot be aligned to %d bytes", request.Size, h.alignment)
	}

	size := memutils.AlignUp(request.Size, h.alignment)

	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.maxBlockCount > 0 && h.live.BlockCount+1 > h.maxBlockCount {
		return 0, errors.Wrapf(memutils.TooManyBlocksError, "%d blocks are live, the limit is %d", h.live.BlockCount, h.maxBlockCount)
	}

	if h.sizeLimit > 0 && h.live.BlockBytes+size > h.sizeLimit {
		return 0, errors.Wrapf(memutils.OutOfMemoryError, "allocating %d bytes on top of %d live bytes exceeds the limit of %d",
			size, h.live.BlockBytes, h.sizeLimit)
	}

	h.nextID++
	id := h.nextID
	h.blocks.Put(id, blockRecord{size: size, typeName: request.TypeName})

	h.live.BlockCount++
	h.live.BlockBytes += size
	h.allocationCount++
	if h.live.BlockBytes > h.peakBytes {
		h.peakBytes = h.live.BlockBytes
	}

	h.callbacks.allocate(h, id, size)
	memutils.DebugValidate(h)

	return id, nil
}

// Free reclaims a block issued by Allocate. It panics if the block is not live.
func (h *Heap) Free(id BlockID) {
	h.logger.Debug("Heap::Free", slog.Uint64("Block", uint64(id)))

	h.mutex.Lock()
	defer h.mutex.Unlock()

	record, ok := h.blocks.Get(id)
	if !ok {
		panic(errors.AssertionFailedf("attempted to free block %d, which is not live in this heap", id))
	}
	h.blocks.Delete(id)

	h.live.BlockCount--
	h.live.BlockBytes -= record.size
	h.freeCount++

	if h.live.BlockCount < 0 || h.live.BlockBytes < 0 {
		panic(fmt.Sprintf("heap statistics went negative: %d blocks, %d bytes", h.live.BlockCount, h.live.BlockBytes))
	}

	h.callbacks.free(h, id, record.size)
	memutils.DebugValidate(h)
}

// IsLive reports whether the block has been issued and not yet freed
func (h *Heap) IsLive(id BlockID) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return h.blocks.Has(id)
}

// LiveBlockCount returns the number of blocks that have been issued and not yet freed
func (h *Heap) LiveBlockCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return h.live.BlockCount
}

// Statistics fills stats with the heap's current and lifetime numbers. stats is cleared first.
func (h *Heap) Statistics(stats *memutils.DetailedStatistics) {
	h.logger.Debug("Heap::Statistics")

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	h.statisticsAfterLock(stats)
}

func (h *Heap) statisticsAfterLock(stats *memutils.DetailedStatistics) {
	stats.Clear()
	h.blocks.Iter(func(_ BlockID, record blockRecord) bool {
		stats.AddBlock(record.size)
		return false
	})
	stats.AllocationCount = h.allocationCount
	stats.FreeCount = h.freeCount
	stats.PeakBytes = h.peakBytes
}

// CheckLeaks returns an error naming the live blocks, if there are any
func (h *Heap) CheckLeaks() error {
	h.logger.Debug("Heap::CheckLeaks")

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.live.BlockCount == 0 {
		return nil
	}

	ids := h.sortedBlockIDs()
	var err error
	for _, id := range ids {
		record, _ := h.blocks.Get(id)
		err = errors.CombineErrors(err, errors.Newf("block %d (%s, %d bytes) is still live", id, record.typeName, record.size))
	}

	return errors.Wrapf(err, "%d blocks leaked", len(ids))
}

// Validate checks that the heap's counters agree with its table of live blocks. It does not lock
// the heap, and is called by DebugValidate with the lock already held.
func (h *Heap) Validate() error {
	var count, bytes int
	h.blocks.Iter(func(id BlockID, record blockRecord) bool {
		count++
		bytes += record.size
		return false
	})

	if count != h.live.BlockCount {
		return errors.Newf("heap tracks %d live blocks, but its counter holds %d", count, h.live.BlockCount)
	}
	if bytes != h.live.BlockBytes {
		return errors.Newf("heap tracks %d live bytes, but its counter holds %d", bytes, h.live.BlockBytes)
	}
	if h.allocationCount-h.freeCount != count {
		return errors.Newf("heap issued %d blocks and freed %d, but %d are live", h.allocationCount, h.freeCount, count)
	}
	if h.sizeLimit > 0 && bytes > h.sizeLimit {
		return errors.Newf("heap holds %d live bytes, which exceeds its limit of %d", bytes, h.sizeLimit)
	}

	return nil
}
