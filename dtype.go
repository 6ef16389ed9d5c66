package rasterio

import "math"

// A Dtype is the logical element type of a grid.
type Dtype string

const (
	DtypeInt16   Dtype = "int16"
	DtypeInt32   Dtype = "int32"
	DtypeUint8   Dtype = "uint8"
	DtypeUint16  Dtype = "uint16"
	DtypeUint32  Dtype = "uint32"
	DtypeFloat32 Dtype = "float32"
	DtypeFloat64 Dtype = "float64"
)

type dtypeRange struct {
	min, max float64
	integer  bool
}

// dtypeRanges is the set of supported dtypes and their representable ranges.
// Floating dtypes accept any finite value.
var dtypeRanges = map[Dtype]dtypeRange{
	DtypeInt16:   {min: math.MinInt16, max: math.MaxInt16, integer: true},
	DtypeInt32:   {min: math.MinInt32, max: math.MaxInt32, integer: true},
	DtypeUint8:   {min: 0, max: math.MaxUint8, integer: true},
	DtypeUint16:  {min: 0, max: math.MaxUint16, integer: true},
	DtypeUint32:  {min: 0, max: math.MaxUint32, integer: true},
	DtypeFloat32: {integer: false},
	DtypeFloat64: {integer: false},
}

// SupportedDtypes returns the fixed set of supported dtypes.
func SupportedDtypes() []Dtype {
	return []Dtype{
		DtypeInt16,
		DtypeInt32,
		DtypeUint8,
		DtypeUint16,
		DtypeUint32,
		DtypeFloat32,
		DtypeFloat64,
	}
}

// Supported reports whether d is in the supported set.
func (d Dtype) Supported() bool {
	_, ok := dtypeRanges[d]
	return ok
}

// ValidateValue reports whether value is exactly representable as d. It
// returns a *UnsupportedDtypeError if d is not supported and a
// *ValueRangeError if value is out of range, non-finite, or has a nonzero
// fractional part against an integer dtype. Values are never clamped or
// truncated.
func ValidateValue(d Dtype, value float64) error {
	r, ok := dtypeRanges[d]
	if !ok {
		return &UnsupportedDtypeError{Dtype: d}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &ValueRangeError{Value: value, Dtype: d}
	}
	if !r.integer {
		return nil
	}
	if value != math.Trunc(value) {
		return &ValueRangeError{Value: value, Dtype: d}
	}
	if value < r.min || value > r.max {
		return &ValueRangeError{Value: value, Dtype: d}
	}
	return nil
}

// InferDtype returns the smallest supported dtype able to hold every value
// exactly. All-integral inputs widen along the unsigned widths when
// non-negative and the signed widths otherwise; any non-integral value widens
// to float32 when every value survives a float32 round trip, and to float64
// otherwise. It returns a *UnsupportedDtypeError when no supported dtype
// fits.
func InferDtype(values []float64) (Dtype, error) {
	if len(values) == 0 {
		return "", &UnsupportedDtypeError{}
	}

	integral := true
	minValue := values[0]
	maxValue := values[0]
	for _, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return "", &UnsupportedDtypeError{}
		}
		if value != math.Trunc(value) {
			integral = false
		}
		minValue = min(minValue, value)
		maxValue = max(maxValue, value)
	}

	if !integral {
		for _, value := range values {
			if float64(float32(value)) != value {
				return DtypeFloat64, nil
			}
		}
		return DtypeFloat32, nil
	}

	var ladder []Dtype
	if minValue >= 0 {
		ladder = []Dtype{DtypeUint8, DtypeUint16, DtypeUint32}
	} else {
		ladder = []Dtype{DtypeInt16, DtypeInt32}
	}
	for _, d := range ladder {
		r := dtypeRanges[d]
		if minValue >= r.min && maxValue <= r.max {
			return d, nil
		}
	}
	return "", &UnsupportedDtypeError{}
}

// quantize returns value as stored in a grid of dtype d. Only float32
// narrows; validation guarantees every other dtype's values are already
// exact.
func (d Dtype) quantize(value float64) float64 {
	if d == DtypeFloat32 {
		return float64(float32(value))
	}
	return value
}
