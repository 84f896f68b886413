package numeric

import (
	"errors"
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
)

// ErrNaN is returned when a NaN is converted to cty. cty numbers are
// arbitrary precision values and have no NaN.
var ErrNaN = errors.New("NaN has no cty representation")

// Float32Cty converts f to a cty number. Infinities map to cty infinities.
func Float32Cty(f float32) (cty.Value, error) {
	if math.IsNaN(float64(f)) {
		return cty.NilVal, ErrNaN
	}
	return cty.NumberFloatVal(float64(f)), nil
}

// Float32FromCty reads a float32 from a known, non-null cty number. A finite
// number beyond the float32 range is an error, not an infinity; precision
// below float32 resolution is rounded.
func Float32FromCty(val cty.Value) (float32, error) {
	if val.IsNull() || !val.IsKnown() {
		return 0, errors.New("number must be known and not null")
	}
	if !val.Type().Equals(cty.Number) {
		return 0, fmt.Errorf("number required, got %s", val.Type().FriendlyName())
	}

	bf := val.AsBigFloat()
	f, _ := bf.Float32()
	if math.IsInf(float64(f), 0) && !bf.IsInf() {
		return 0, fmt.Errorf("%s is out of float32 range", bf.Text('g', 10))
	}
	return f, nil
}
