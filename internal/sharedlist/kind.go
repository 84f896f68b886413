package sharedlist

import (
	"fmt"
	"slices"

	"github.com/vk/fnlists/internal/numeric"
	"github.com/vk/fnlists/internal/typeregistry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Kind binds the element type T to its descriptor. The four bindings below
// are the only ones; the zero Kind is not usable.
type Kind[T Element] struct {
	desc    *typeregistry.Descriptor
	tracker Tracker
	toCty   func(T) (cty.Value, error)
	fromCty func(cty.Value) (T, error)
}

var (
	Floats = Kind[float32]{
		desc:    typeregistry.For(typeregistry.Float),
		tracker: nopTracker{},
		toCty:   numeric.Float32Cty,
		fromCty: numeric.Float32FromCty,
	}
	FVec3s = Kind[numeric.Vector]{
		desc:    typeregistry.For(typeregistry.FVec3),
		tracker: nopTracker{},
		toCty:   numeric.Vector.Cty,
		fromCty: numeric.VectorFromCty,
	}
	Int32s = Kind[int32]{
		desc:    typeregistry.For(typeregistry.Int32),
		tracker: nopTracker{},
		toCty:   func(v int32) (cty.Value, error) { return cty.NumberIntVal(int64(v)), nil },
		fromCty: scalarFromCty[int32],
	}
	Bools = Kind[bool]{
		desc:    typeregistry.For(typeregistry.Bool),
		tracker: nopTracker{},
		toCty:   func(v bool) (cty.Value, error) { return cty.BoolVal(v), nil },
		fromCty: scalarFromCty[bool],
	}
)

func scalarFromCty[T int32 | bool](v cty.Value) (T, error) {
	var out T
	err := gocty.FromCtyValue(v, &out)
	return out, err
}

// Descriptor returns the descriptor every list of this kind reports from Type.
func (k Kind[T]) Descriptor() *typeregistry.Descriptor {
	return k.desc
}

// WithTracker returns a copy of the binding whose lists report storage
// lifetime to t. A nil t disables tracking.
func (k Kind[T]) WithTracker(t Tracker) Kind[T] {
	if t == nil {
		t = nopTracker{}
	}
	k.tracker = t
	return k
}

// New creates a list holding a copy of elems, with a reference count of one.
func (k Kind[T]) New(elems ...T) *List[T] {
	return newList(k, slices.Clone(elems))
}

// NewBuilder returns an empty builder with room for capacity elements.
func (k Kind[T]) NewBuilder(capacity int) *Builder[T] {
	return &Builder[T]{kind: k, data: make([]T, 0, max(capacity, 0))}
}

// FromCty creates a list from a cty list, set or tuple. The value is first
// converted to the descriptor's CtyType, so [1, 2.5] is accepted for a
// float list and [[0, 0, 1]] for an fvec3 list.
func (k Kind[T]) FromCty(val cty.Value) (*List[T], error) {
	if val.IsNull() {
		return nil, fmt.Errorf("%s: value is null", k.desc.Name())
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("%s: value is not known", k.desc.Name())
	}

	listVal, err := convert.Convert(val, k.desc.CtyType())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", k.desc.Name(), err)
	}

	data := make([]T, 0, listVal.LengthInt())
	for it := listVal.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		elem, err := k.fromCty(ev)
		if err != nil {
			return nil, fmt.Errorf("%s element %d: %w", k.desc.Name(), len(data), err)
		}
		data = append(data, elem)
	}
	return newList(k, data), nil
}

// NewFromCty builds a list of whichever kind desc names. It is the entry
// point for producers that only know the descriptor at run time.
func NewFromCty(desc *typeregistry.Descriptor, val cty.Value, tracker Tracker) (Value, error) {
	var (
		v   Value
		err error
	)
	switch desc {
	case Floats.desc:
		v, err = valueOrNil(Floats.WithTracker(tracker).FromCty(val))
	case FVec3s.desc:
		v, err = valueOrNil(FVec3s.WithTracker(tracker).FromCty(val))
	case Int32s.desc:
		v, err = valueOrNil(Int32s.WithTracker(tracker).FromCty(val))
	case Bools.desc:
		v, err = valueOrNil(Bools.WithTracker(tracker).FromCty(val))
	default:
		panic(fmt.Sprintf("sharedlist: no binding for descriptor %v", desc))
	}
	return v, err
}

// valueOrNil keeps a failed conversion from surfacing as a non-nil Value
// wrapping a nil *List.
func valueOrNil[T Element](l *List[T], err error) (Value, error) {
	if err != nil {
		return nil, err
	}
	return l, nil
}
