// Package numeric holds the small value types that can be stored in shared
// lists but are not Go builtins.
package numeric

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
)

// Vector is a three component float32 vector. It uses Go's default struct
// layout: three packed float32 fields, 12 bytes, 4 byte alignment.
type Vector struct {
	X, Y, Z float32
}

// CtyType is the cty shape of a Vector: a tuple of three numbers, which is
// what an HCL or JSON literal like [1, 2, 3] evaluates to.
var CtyType = cty.Tuple([]cty.Type{cty.Number, cty.Number, cty.Number})

// Vec3 is shorthand for Vector{x, y, z}.
func Vec3(x, y, z float32) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum of v and o.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference of v and o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale multiplies every component by s.
func (v Vector) Scale(s float32) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the euclidean length of v.
func (v Vector) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Cty converts v into a cty tuple of three numbers. It fails with ErrNaN if
// any component is NaN.
func (v Vector) Cty() (cty.Value, error) {
	comps := make([]cty.Value, 3)
	for i, c := range [3]float32{v.X, v.Y, v.Z} {
		cv, err := Float32Cty(c)
		if err != nil {
			return cty.NilVal, fmt.Errorf("vector component %d: %w", i, err)
		}
		comps[i] = cv
	}
	return cty.TupleVal(comps), nil
}

// VectorFromCty reads a Vector from a known, non-null tuple or list of
// exactly three numbers.
func VectorFromCty(val cty.Value) (Vector, error) {
	if val.IsNull() || !val.IsKnown() {
		return Vector{}, fmt.Errorf("vector value must be known and not null")
	}
	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return Vector{}, fmt.Errorf("vector must be a sequence of 3 numbers, got %s", ty.FriendlyName())
	}
	if n := val.LengthInt(); n != 3 {
		return Vector{}, fmt.Errorf("vector must have exactly 3 components, got %d", n)
	}

	var comps [3]float32
	for i, c := range val.AsValueSlice() {
		f, err := Float32FromCty(c)
		if err != nil {
			return Vector{}, fmt.Errorf("vector component %d: %w", i, err)
		}
		comps[i] = f
	}
	return Vector{comps[0], comps[1], comps[2]}, nil
}
