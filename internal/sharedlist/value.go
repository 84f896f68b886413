package sharedlist

import (
	"fmt"

	"github.com/vk/fnlists/internal/typeregistry"
	"github.com/zclconf/go-cty/cty"
)

// Value is a list with its element kind erased, as carried along a graph
// edge. Every *List[T] is a Value.
type Value interface {
	Type() *typeregistry.Descriptor
	Len() int
	Retain() Value
	Release()
	Cty() (cty.Value, error)
}

var (
	_ Value = (*FloatList)(nil)
	_ Value = (*FVec3List)(nil)
	_ Value = (*Int32List)(nil)
	_ Value = (*BoolList)(nil)
)

// Cast returns v as a list of kind k. It compares descriptors by identity and
// fails with ErrKindMismatch if v holds another kind. The returned handle is
// v itself, so ownership does not change. A nil v is a mismatch.
func Cast[T Element](v Value, k Kind[T]) (*List[T], error) {
	if v == nil {
		return nil, fmt.Errorf("%w: want %s, got nil", ErrKindMismatch, k.desc.Name())
	}
	if got := v.Type(); got != k.desc {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrKindMismatch, k.desc.Name(), got.Name())
	}
	l, ok := v.(*List[T])
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a %s", ErrKindMismatch, v, k.desc.Name())
	}
	return l, nil
}
