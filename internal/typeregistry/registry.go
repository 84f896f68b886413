package typeregistry

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/fnlists/internal/numeric"
	"github.com/zclconf/go-cty/cty"
)

// Kind identifies one of the closed set of list element kinds.
type Kind uint8

const (
	Float Kind = iota
	FVec3
	Int32
	Bool

	kindCount
)

var kindNames = [...]string{
	Float: "float",
	FVec3: "fvec3",
	Int32: "int32",
	Bool:  "bool",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k < kindCount
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Descriptor is the runtime identity of a list of one element kind.
// Descriptors are compared by pointer; never copy one by value.
type Descriptor struct {
	kind      Kind
	name      string
	elemType  reflect.Type
	elemCty   cty.Type
	listCty   cty.Type
	elemSize  uintptr
	elemAlign uintptr
}

// Kind returns the element kind this descriptor stands for.
func (d *Descriptor) Kind() Kind { return d.kind }

// Name returns the list type name, e.g. "float_list".
func (d *Descriptor) Name() string { return d.name }

// ElemName returns the element name, e.g. "float".
func (d *Descriptor) ElemName() string { return d.kind.String() }

// ElemType returns the Go type of a single element.
func (d *Descriptor) ElemType() reflect.Type { return d.elemType }

// ElemSize returns the size of one element in bytes.
func (d *Descriptor) ElemSize() uintptr { return d.elemSize }

// ElemAlign returns the alignment of one element in bytes.
func (d *Descriptor) ElemAlign() uintptr { return d.elemAlign }

// ElemCtyType returns the cty type a single element converts to.
func (d *Descriptor) ElemCtyType() cty.Type { return d.elemCty }

// CtyType returns the cty list type of the whole list.
func (d *Descriptor) CtyType() cty.Type { return d.listCty }

func (d *Descriptor) String() string { return d.name }

// descriptors is indexed by Kind. It is filled in once by init and read-only
// from then on.
var descriptors [kindCount]*Descriptor

func newDescriptor(kind Kind, elem reflect.Type, elemCty cty.Type) *Descriptor {
	return &Descriptor{
		kind:      kind,
		name:      kind.String() + "_list",
		elemType:  elem,
		elemCty:   elemCty,
		listCty:   cty.List(elemCty),
		elemSize:  elem.Size(),
		elemAlign: uintptr(elem.Align()),
	}
}

func init() {
	descriptors[Float] = newDescriptor(Float, reflect.TypeFor[float32](), cty.Number)
	descriptors[FVec3] = newDescriptor(FVec3, reflect.TypeFor[numeric.Vector](), numeric.CtyType)
	descriptors[Int32] = newDescriptor(Int32, reflect.TypeFor[int32](), cty.Number)
	descriptors[Bool] = newDescriptor(Bool, reflect.TypeFor[bool](), cty.Bool)
}

// For returns the descriptor of kind. Every call with the same kind returns
// the same pointer. For panics if kind is not one of the declared constants.
func For(kind Kind) *Descriptor {
	if !kind.Valid() {
		panic(fmt.Sprintf("typeregistry: unknown element kind %s", kind))
	}
	return descriptors[kind]
}

// All returns every descriptor in kind order.
func All() []*Descriptor {
	out := make([]*Descriptor, 0, kindCount)
	for _, d := range descriptors {
		out = append(out, d)
	}
	return out
}

// ByName looks a descriptor up by its list name ("int32_list") or element
// name ("int32"). Matching is case-insensitive.
func ByName(name string) (*Descriptor, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range descriptors {
		if d.name == name || d.kind.String() == name {
			return d, true
		}
	}
	return nil, false
}

// Names returns the list names of all descriptors in kind order. It is used
// when reporting an unknown type keyword.
func Names() []string {
	names := make([]string, 0, kindCount)
	for _, d := range descriptors {
		names = append(names, d.name)
	}
	return names
}
