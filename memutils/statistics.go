package memutils

import "math"

// Statistics is a snapshot of the blocks currently held by an allocator
type Statistics struct {
	BlockCount int
	BlockBytes int
}

func (s *Statistics) Clear() {
	s.BlockCount = 0
	s.BlockBytes = 0
}

// DetailedStatistics extends Statistics with lifetime counters and the size range of live blocks
type DetailedStatistics struct {
	Statistics
	AllocationCount int
	FreeCount       int
	PeakBytes       int
	BlockSizeMin    int
	BlockSizeMax    int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.AllocationCount = 0
	s.FreeCount = 0
	s.PeakBytes = 0
	s.BlockSizeMin = math.MaxInt
	s.BlockSizeMax = 0
}

// AddBlock records a live block of the given size. It does not touch the lifetime counters.
func (s *DetailedStatistics) AddBlock(size int) {
	s.BlockCount++
	s.BlockBytes += size

	if size < s.BlockSizeMin {
		s.BlockSizeMin = size
	}

	if size > s.BlockSizeMax {
		s.BlockSizeMax = size
	}
}
