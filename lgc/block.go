package lgc

import (
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/paucazou/Little-GC/heap"
	"github.com/paucazou/Little-GC/memutils"
)

// Destroyer is implemented by values that need to run cleanup when the last Handle to them is
// released. It is used unless a destructor is given with WithDestructor.
type Destroyer interface {
	Destroy()
}

type block[T any] struct {
	value T
	refs  int

	id        heap.BlockID
	allocator heap.Allocator
	destroy   func(*T)
}

func blockSize[T any]() int {
	return int(unsafe.Sizeof(block[T]{}))
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

func (b *block[T]) acquire() {
	if b.refs <= 0 {
		panic(errors.AssertionFailedf("lgc: acquired block %d after it was destroyed", b.id))
	}
	b.refs++
}

// release drops one reference, and destroys the value and frees the block when it was the last one
func (b *block[T]) release() {
	if b.refs <= 0 {
		panic(errors.AssertionFailedf("lgc: released block %d after it was destroyed", b.id))
	}

	b.refs--
	if b.refs > 0 {
		return
	}

	// The block goes back to the allocator even if the destructor panics
	defer b.allocator.Free(b.id)
	b.destroyValue()
}

func (b *block[T]) destroyValue() {
	defer func() {
		var zero T
		b.value = zero
	}()

	if b.destroy != nil {
		b.destroy(&b.value)
		return
	}

	if destroyer, ok := any(&b.value).(Destroyer); ok {
		destroyer.Destroy()
		return
	}

	if destroyer, ok := any(b.value).(Destroyer); ok && !isNil(b.value) {
		destroyer.Destroy()
	}
}

func isNil(value any) bool {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func (b *block[T]) Validate() error {
	if b.refs < 1 {
		return errors.Newf("block %d is reachable with a refcount of %d", b.id, b.refs)
	}
	if b.allocator == nil {
		return errors.Newf("block %d has no allocator to return it to", b.id)
	}

	return nil
}

var _ memutils.Validatable = &block[int]{}
