package sharedlist

import (
	"fmt"
	"iter"
	"slices"
	"sync/atomic"

	"github.com/vk/fnlists/internal/numeric"
	"github.com/vk/fnlists/internal/typeregistry"
	"github.com/zclconf/go-cty/cty"
)

// Element is the closed set of types a List can hold.
type Element interface {
	float32 | numeric.Vector | int32 | bool
}

// storage is shared by every handle of one list.
type storage[T Element] struct {
	kind Kind[T]
	data []T
	refs atomic.Int64
}

func (s *storage[T]) bytes() uintptr {
	return uintptr(len(s.data)) * s.kind.desc.ElemSize()
}

// List is a handle to an immutable sequence of T. The zero value is not
// usable; lists come from a Kind binding or a Builder.
type List[T Element] struct {
	s        *storage[T]
	released atomic.Bool
}

// Exported instantiations, one per element kind.
type (
	FloatList = List[float32]
	FVec3List = List[numeric.Vector]
	Int32List = List[int32]
	BoolList  = List[bool]
)

// newList takes ownership of data; callers must not keep a reference to it.
func newList[T Element](kind Kind[T], data []T) *List[T] {
	s := &storage[T]{kind: kind, data: data}
	s.refs.Store(1)
	kind.tracker.OnAlloc(kind.desc, len(data), s.bytes())
	return &List[T]{s: s}
}

func (l *List[T]) live() *storage[T] {
	if l.released.Load() {
		panic(ErrReleased)
	}
	return l.s
}

// Clone returns a new handle to the same elements. The caller owns the new
// handle and must release it.
func (l *List[T]) Clone() *List[T] {
	s := l.live()
	s.refs.Add(1)
	return &List[T]{s: s}
}

// Retain is Clone behind the type-erased Value interface.
func (l *List[T]) Retain() Value {
	return l.Clone()
}

// Release gives up this handle. The storage is dropped when the last handle
// goes. Releasing a handle twice panics with ErrReleased.
func (l *List[T]) Release() {
	if !l.released.CompareAndSwap(false, true) {
		panic(ErrReleased)
	}
	s := l.s
	switch n := s.refs.Add(-1); {
	case n == 0:
		elems, bytes := len(s.data), s.bytes()
		s.data = nil
		s.kind.tracker.OnFree(s.kind.desc, elems, bytes)
	case n < 0:
		panic("sharedlist: reference count dropped below zero")
	}
}

// RefCount returns the number of live handles to this list's storage.
func (l *List[T]) RefCount() int {
	return int(l.live().refs.Load())
}

// IsShared reports whether another handle to the same storage exists.
func (l *List[T]) IsShared() bool {
	return l.RefCount() > 1
}

// Type returns the descriptor of the list's element kind.
func (l *List[T]) Type() *typeregistry.Descriptor {
	return l.live().kind.desc
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return len(l.live().data)
}

// At returns the element at index i, or an *IndexError when i is outside
// [0, Len()).
func (l *List[T]) At(i int) (T, error) {
	data := l.live().data
	if i < 0 || i >= len(data) {
		var zero T
		return zero, &IndexError{Index: i, Size: len(data)}
	}
	return data[i], nil
}

// Values returns a copy of the elements.
func (l *List[T]) Values() []T {
	return slices.Clone(l.live().data)
}

// All iterates over index, element pairs in order.
func (l *List[T]) All() iter.Seq2[int, T] {
	data := l.live().data
	return func(yield func(int, T) bool) {
		for i, v := range data {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Equal reports whether both lists have the same kind and the same elements
// in the same order. Handles to the same storage are always equal. Otherwise
// elements compare with ==, so a list holding NaN is not equal to a copy of
// itself.
func (l *List[T]) Equal(other *List[T]) bool {
	a, b := l.live(), other.live()
	if a == b {
		return true
	}
	return a.kind.desc == b.kind.desc && slices.Equal(a.data, b.data)
}

// Copy returns a new list with its own storage holding the same elements.
func (l *List[T]) Copy() *List[T] {
	s := l.live()
	return newList(s.kind, slices.Clone(s.data))
}

// Append returns a new list holding l's elements followed by elems. l is not
// modified.
func (l *List[T]) Append(elems ...T) *List[T] {
	s := l.live()
	data := make([]T, 0, len(s.data)+len(elems))
	data = append(data, s.data...)
	data = append(data, elems...)
	return newList(s.kind, data)
}

// Cty converts the list into a cty list value of the descriptor's CtyType.
// A NaN float or vector component has no cty form; the conversion then
// fails with ErrNotRepresentable.
func (l *List[T]) Cty() (cty.Value, error) {
	s := l.live()
	if len(s.data) == 0 {
		return cty.ListValEmpty(s.kind.desc.ElemCtyType()), nil
	}
	vals := make([]cty.Value, len(s.data))
	for i, v := range s.data {
		cv, err := s.kind.toCty(v)
		if err != nil {
			return cty.NilVal, fmt.Errorf("%w: %s element %d: %w", ErrNotRepresentable, s.kind.desc.Name(), i, err)
		}
		vals[i] = cv
	}
	return cty.ListVal(vals), nil
}
