package heap

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/paucazou/Little-GC/internal/utils"
	"github.com/paucazou/Little-GC/memutils"
	"golang.org/x/exp/slog"
)

// CreateFlags indicate specific heap behaviors to activate or deactivate
type CreateFlags int32

const (
	// HeapCreateExternallySynchronized ensures that this heap will not be synchronized internally.
	// The consumer must guarantee it is used from only one goroutine at a time or is synchronized
	// by some other mechanism.
	HeapCreateExternallySynchronized CreateFlags = 1 << iota
)

var createFlagsMapping = map[CreateFlags]string{
	HeapCreateExternallySynchronized: "HeapCreateExternallySynchronized",
}

func (f CreateFlags) String() string {
	if f == 0 {
		return "None"
	}

	var names []string
	for bit := CreateFlags(1); bit != 0 && bit <= f; bit <<= 1 {
		if f&bit == 0 {
			continue
		}
		name, ok := createFlagsMapping[bit]
		if !ok {
			name = "Unknown"
		}
		names = append(names, name)
	}

	return strings.Join(names, "|")
}

const (
	// defaultBlockAlignment is used as the MinBlockAlignment when none is provided via CreateOptions
	defaultBlockAlignment uint = 8
	initialBlockTableSize uint32 = 64
)

// CreateOptions contains optional settings when creating a heap
type CreateOptions struct {
	// Flags indicates specific heap behaviors to activate or deactivate
	Flags CreateFlags

	// HeapSizeLimit is the maximum number of bytes that may be live at once. Zero means no limit.
	// The heap returns memutils.OutOfMemoryError rather than exceed it.
	HeapSizeLimit int

	// MaxBlockCount is the maximum number of blocks that may be live at once. Zero means no limit.
	// The heap returns memutils.TooManyBlocksError rather than exceed it.
	MaxBlockCount int

	// MinBlockAlignment is the granularity that block sizes are rounded up to. It must be a power
	// of two; zero selects the default of 8 bytes.
	MinBlockAlignment uint

	// Callbacks is an optional set of callbacks that will be executed when blocks are issued
	// and reclaimed
	Callbacks *CallbackOptions
}

// New creates a new Heap
//
// logger - Receives debug output for every heap operation
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, options CreateOptions) (*Heap, error) {
	if logger == nil {
		return nil, errors.New("heap.New requires a logger")
	}
	if options.HeapSizeLimit < 0 {
		return nil, errors.Newf("heap.CreateOptions.HeapSizeLimit must not be negative, but was %d", options.HeapSizeLimit)
	}
	if options.MaxBlockCount < 0 {
		return nil, errors.Newf("heap.CreateOptions.MaxBlockCount must not be negative, but was %d", options.MaxBlockCount)
	}

	alignment := options.MinBlockAlignment
	if alignment == 0 {
		alignment = defaultBlockAlignment
	}
	err := memutils.CheckPow2(alignment, "heap.CreateOptions.MinBlockAlignment")
	if err != nil {
		return nil, err
	}

	h := &Heap{
		logger: logger,
		mutex: utils.OptionalRWMutex{
			UseMutex: options.Flags&HeapCreateExternallySynchronized == 0,
		},
		createFlags:   options.Flags,
		sizeLimit:     options.HeapSizeLimit,
		maxBlockCount: options.MaxBlockCount,
		alignment:     alignment,
		callbacks:     options.Callbacks,
		blocks:        swiss.NewMap[BlockID, blockRecord](initialBlockTableSize),
	}

	logger.Debug("Heap::New",
		slog.String("Flags", options.Flags.String()),
		slog.Int("HeapSizeLimit", options.HeapSizeLimit),
		slog.Int("MaxBlockCount", options.MaxBlockCount),
		slog.Uint64("MinBlockAlignment", uint64(alignment)),
	)

	return h, nil
}
