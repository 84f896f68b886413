// Package sharedlist implements immutable, reference-counted lists of a single
// element kind, the values that flow along graph edges.
//
// # Handles and ownership
//
// A *List[T] is a handle. Creating a list yields one handle with a reference
// count of one. Clone returns another handle to the same storage and bumps
// the count; it never copies elements. Every handle must be released exactly
// once. When the last handle is released the storage is dropped and, if the
// list was created through a binding with a Tracker, the tracker is told
// about it exactly once.
//
// Element data is never mutated after a list is created. Append and Copy
// return new lists; Builder is the only way to grow a sequence in place, and
// only until Build publishes it.
//
// # Kinds
//
// List is generic, but it is only instantiated for the four element kinds in
// typeregistry. Each instantiation has an exported alias (FloatList, ...) and
// a Kind binding (Floats, ...) that ties it to its descriptor:
//
//	l := sharedlist.Floats.New(1, 2, 3)
//	defer l.Release()
//	l.Type() == typeregistry.For(typeregistry.Float) // true
//
// Code that only sees a type-erased Value checks Value.Type before calling
// Cast to get the concrete list back.
package sharedlist
