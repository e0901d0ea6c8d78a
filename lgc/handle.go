package lgc

import (
	"github.com/cockroachdb/errors"
	"github.com/paucazou/Little-GC/memutils"
)

// Handle is a counted reference to a managed value of type T. All handles derived from one call
// to New or Make share that value; none of them copies it.
//
// The zero Handle is unbound: it refers to no value. Handles also become unbound when they are
// released or moved from. Get, Set and Load panic on an unbound handle.
type Handle[T any] struct {
	block *block[T]
}

func (h Handle[T]) mustBlock(operation string) *block[T] {
	if h.block == nil {
		panic(errors.AssertionFailedf("lgc: %s called on an unbound handle", operation))
	}
	if h.block.refs <= 0 {
		panic(errors.AssertionFailedf("lgc: %s called on a handle whose value was already destroyed", operation))
	}
	memutils.DebugValidate(h.block)

	return h.block
}

// Bound reports whether the handle refers to a value
func (h Handle[T]) Bound() bool {
	return h.block != nil
}

// Same reports whether both handles are bound to the same value
func (h Handle[T]) Same(other Handle[T]) bool {
	return h.block != nil && h.block == other.block
}

// Clone returns a new holder of the value h refers to. The value is not copied. Cloning an
// unbound handle returns an unbound handle.
func (h Handle[T]) Clone() Handle[T] {
	if h.block == nil {
		return Handle[T]{}
	}

	h.block.acquire()
	return Handle[T]{block: h.block}
}

// Assign makes h a holder of src's value, releasing whatever h held before. Assigning a handle
// to itself, or to another holder of the same value, leaves the count unchanged. Assigning an
// unbound src releases h and leaves it unbound.
func (h *Handle[T]) Assign(src Handle[T]) {
	// Acquire before releasing, so that a shared block never passes through zero
	if src.block != nil {
		src.block.acquire()
	}

	previous := h.block
	h.block = src.block

	if previous != nil {
		previous.release()
	}
}

// Move transfers h's reference to the returned handle and leaves h unbound
func (h *Handle[T]) Move() Handle[T] {
	moved := Handle[T]{block: h.block}
	h.block = nil

	return moved
}

// Release gives up h's reference and leaves h unbound. If h was the last holder, the value's
// destructor runs and its block is freed before Release returns. Releasing an unbound handle
// does nothing, so it is safe to defer Release and still release early.
func (h *Handle[T]) Release() {
	if h == nil || h.block == nil {
		return
	}

	released := h.block
	h.block = nil
	released.release()
}

// Get returns a pointer to the managed value. Writes through it are seen by every holder.
// The pointer must not be used after the last holder has been released.
func (h Handle[T]) Get() *T {
	return &h.mustBlock("Get").value
}

// Set overwrites the managed value
func (h Handle[T]) Set(value T) {
	h.mustBlock("Set").value = value
}

// Load returns a copy of the managed value
func (h Handle[T]) Load() T {
	return h.mustBlock("Load").value
}
