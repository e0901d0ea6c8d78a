// Package lgc is a little garbage collector: explicit reference counting for values that need a
// deterministic end of life.
//
// A value is placed under management once, through New or Make, which returns the first Handle
// to it. Further holders are created with Handle.Clone or Handle.Assign, and every holder gives
// its reference back with Handle.Release. The value's destructor runs and its block is returned
// to the heap.Allocator at the exact Release that drops the count to zero.
//
// Handles must be shared through Clone or Assign only. Copying a Handle struct with plain Go
// assignment produces an alias that is not counted: releasing both the original and the alias
// releases the block twice, and the alias dangles once the original's last holder is gone.
//
// Handles are not safe for concurrent use. Handles referring to the same value must be cloned
// and released from a single goroutine, or under external synchronization.
//
// Reference cycles between managed values are never reclaimed.
package lgc
