package sharedlist

// Builder grows a sequence before it is published as a List. It is not safe
// for concurrent use.
type Builder[T Element] struct {
	kind  Kind[T]
	data  []T
	built bool
}

// Add appends elems. It panics with ErrBuilt once Build has been called.
func (b *Builder[T]) Add(elems ...T) *Builder[T] {
	if b.built {
		panic(ErrBuilt)
	}
	b.data = append(b.data, elems...)
	return b
}

// Len returns the number of elements added so far.
func (b *Builder[T]) Len() int {
	return len(b.data)
}

// Build publishes the accumulated elements as a list with a reference count
// of one. The builder hands its buffer to the list and cannot be reused.
func (b *Builder[T]) Build() *List[T] {
	if b.built {
		panic(ErrBuilt)
	}
	b.built = true
	data := b.data
	b.data = nil
	return newList(b.kind, data)
}
