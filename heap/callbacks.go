package heap

type AllocateBlockCallback func(
	heap *Heap,
	id BlockID,
	size int,
	userData interface{},
)

type FreeBlockCallback func(
	heap *Heap,
	id BlockID,
	size int,
	userData interface{},
)

// CallbackOptions is an optional set of callbacks executed whenever the Heap issues or reclaims
// a block. Callbacks run while the heap is locked and must not call back into it.
type CallbackOptions struct {
	Allocate AllocateBlockCallback
	Free     FreeBlockCallback
	UserData interface{}
}

func (c *CallbackOptions) allocate(h *Heap, id BlockID, size int) {
	if c != nil && c.Allocate != nil {
		c.Allocate(h, id, size, c.UserData)
	}
}

func (c *CallbackOptions) free(h *Heap, id BlockID, size int) {
	if c != nil && c.Free != nil {
		c.Free(h, id, size, c.UserData)
	}
}
