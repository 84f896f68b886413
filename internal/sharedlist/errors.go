package sharedlist

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by every *IndexError.
	ErrOutOfRange = errors.New("sharedlist: index out of range")

	// ErrKindMismatch is returned when a value is cast to the wrong kind.
	ErrKindMismatch = errors.New("sharedlist: element kind mismatch")

	// ErrReleased is the panic value for any use of a released handle.
	ErrReleased = errors.New("sharedlist: handle already released")

	// ErrBuilt is the panic value for adding to a builder after Build.
	ErrBuilt = errors.New("sharedlist: builder already built")

	// ErrNotRepresentable is returned when a list holds an element cty
	// cannot express, such as NaN.
	ErrNotRepresentable = errors.New("sharedlist: element has no cty representation")
)

// IndexError reports an At call with an index outside [0, Size).
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("sharedlist: index %d out of range [0, %d)", e.Index, e.Size)
}

// Is makes errors.Is(err, ErrOutOfRange) hold for any IndexError.
func (e *IndexError) Is(target error) bool {
	return target == ErrOutOfRange
}
