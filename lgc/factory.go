package lgc

import (
	"github.com/cockroachdb/errors"
	"github.com/paucazou/Little-GC/heap"
	"github.com/paucazou/Little-GC/memutils"
)

type options[T any] struct {
	destroy  func(*T)
	typeName string
}

// Option changes how New and Make set up a managed value
type Option[T any] func(*options[T])

// WithDestructor runs destroy on the value when its last Handle is released, in place of the
// value's own Destroy method
func WithDestructor[T any](destroy func(*T)) Option[T] {
	return func(o *options[T]) {
		o.destroy = destroy
	}
}

// WithTypeName overrides the name the allocator records for the block
func WithTypeName[T any](name string) Option[T] {
	return func(o *options[T]) {
		o.typeName = name
	}
}

// New places value under management and returns its first Handle.
//
// An error is returned, and no handle is produced, if allocator refuses the block.
func New[T any](allocator heap.Allocator, value T, opts ...Option[T]) (Handle[T], error) {
	return Make(allocator, func(target *T) error {
		*target = value
		return nil
	}, opts...)
}

// Make allocates a block for a T and builds the value in place by calling construct with a
// pointer to the zeroed value. A nil construct leaves the value zeroed.
//
// If the allocator refuses the block, its error is returned. If construct returns an error or
// panics, the block is freed before Make returns or the panic continues, and no handle is
// produced.
func Make[T any](allocator heap.Allocator, construct func(*T) error, opts ...Option[T]) (Handle[T], error) {
	if allocator == nil {
		return Handle[T]{}, errors.AssertionFailedf("lgc: Make called with a nil allocator")
	}

	o := options[T]{typeName: typeName[T]()}
	for _, opt := range opts {
		opt(&o)
	}

	id, err := allocator.Allocate(heap.Request{
		Size:     blockSize[T](),
		TypeName: o.typeName,
	})
	if err != nil {
		return Handle[T]{}, errors.Wrapf(err, "failed to allocate a managed %s", o.typeName)
	}

	b := &block[T]{
		id:        id,
		allocator: allocator,
		destroy:   o.destroy,
	}

	constructed := false
	defer func() {
		if !constructed {
			allocator.Free(id)
		}
	}()

	if construct != nil {
		err = construct(&b.value)
		if err != nil {
			return Handle[T]{}, errors.Wrapf(err, "failed to construct a managed %s", o.typeName)
		}
	}

	constructed = true
	b.refs = 1
	memutils.DebugValidate(b)

	return Handle[T]{block: b}, nil
}
