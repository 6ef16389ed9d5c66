package rasterio

import "fmt"

// An EmptyInputError is returned when Rasterize is given no geometries and no
// output grid.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "no geometries and no output grid"
}

// An UnsupportedDtypeError is returned when a requested or inferred dtype is
// not in the supported set. Dtype is empty when no supported dtype could hold
// the values under inference.
type UnsupportedDtypeError struct {
	Dtype Dtype
}

func (e *UnsupportedDtypeError) Error() string {
	if e.Dtype == "" {
		return "no supported dtype can hold all values"
	}
	return fmt.Sprintf("unsupported dtype: %s", e.Dtype)
}

// A ValueRangeError is returned when a burn, fill, or default value cannot be
// represented exactly in the resolved dtype.
type ValueRangeError struct {
	Value float64
	Dtype Dtype
}

func (e *ValueRangeError) Error() string {
	return fmt.Sprintf("value %v cannot be represented exactly as %s", e.Value, e.Dtype)
}

// A SingularTransformError is returned when the inverse of a non-invertible
// transform is requested.
type SingularTransformError struct {
	Transform Affine
}

func (e *SingularTransformError) Error() string {
	return fmt.Sprintf("transform %v is singular", e.Transform)
}

// A ShapeMismatchError is returned when a caller-supplied output grid's shape
// disagrees with the stated output shape.
type ShapeMismatchError struct {
	OutRows, OutCols int
	Rows, Cols       int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("output grid shape (%d, %d) does not match (%d, %d)", e.OutRows, e.OutCols, e.Rows, e.Cols)
}
