package heap

//go:generate mockgen -source allocator.go -destination mocks/allocator.go -package mock_heap

// BlockID identifies a block issued by an Allocator. Zero is never issued.
type BlockID uint64

// Request describes a block that a caller would like to allocate
type Request struct {
	// Size is the number of bytes the block occupies: the managed value plus its bookkeeping
	Size int
	// TypeName is a human-readable name for the value stored in the block, used in reports
	TypeName string
}

// Allocator is the capability that handles use to obtain and return block storage.
//
// Allocate either approves the request and returns a fresh BlockID or returns an error
// describing why the storage could not be obtained. Free returns a block previously issued
// by Allocate. Freeing a block twice or freeing an unknown block is a programmer error and
// implementations may panic.
type Allocator interface {
	Allocate(request Request) (BlockID, error)
	Free(id BlockID)
}
