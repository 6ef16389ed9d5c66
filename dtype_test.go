package rasterio

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestValidateValue(t *testing.T) {
	for _, tc := range []struct {
		dtype Dtype
		value float64
	}{
		{dtype: DtypeInt16, value: -32768},
		{dtype: DtypeInt16, value: 32767},
		{dtype: DtypeInt32, value: -2147483648},
		{dtype: DtypeUint8, value: 0},
		{dtype: DtypeUint8, value: 255},
		{dtype: DtypeUint16, value: 65535},
		{dtype: DtypeUint32, value: 4294967295},
		{dtype: DtypeFloat32, value: 1.434532},
		{dtype: DtypeFloat64, value: -98332.133422114},
	} {
		assert.NoError(t, ValidateValue(tc.dtype, tc.value))
	}
}

func TestValidateValue_OutOfRange(t *testing.T) {
	for _, tc := range []struct {
		dtype Dtype
		value float64
	}{
		{dtype: DtypeUint8, value: 3.2423},
		{dtype: DtypeUint8, value: -2147483648},
		{dtype: DtypeUint8, value: 256},
		{dtype: DtypeInt16, value: 32768},
		{dtype: DtypeInt16, value: 0.5},
		{dtype: DtypeUint32, value: 4294967296},
	} {
		err := ValidateValue(tc.dtype, tc.value)
		var rangeErr *ValueRangeError
		assert.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, tc.value, rangeErr.Value)
		assert.Equal(t, tc.dtype, rangeErr.Dtype)
	}
}

func TestValidateValue_UnsupportedDtype(t *testing.T) {
	for _, dtype := range []Dtype{"int8", "int64", "float16", "bool", ""} {
		err := ValidateValue(dtype, 0)
		var unsupportedErr *UnsupportedDtypeError
		assert.True(t, errors.As(err, &unsupportedErr))
		assert.Equal(t, dtype, unsupportedErr.Dtype)
	}
}

func TestInferDtype(t *testing.T) {
	for _, tc := range []struct {
		name     string
		values   []float64
		expected Dtype
	}{
		{name: "zero", values: []float64{0}, expected: DtypeUint8},
		{name: "uint8_max", values: []float64{255, 0}, expected: DtypeUint8},
		{name: "uint16", values: []float64{256, 0}, expected: DtypeUint16},
		{name: "uint32", values: []float64{4294967295, 0}, expected: DtypeUint32},
		{name: "negative", values: []float64{-1, 0}, expected: DtypeInt16},
		{name: "int16_min", values: []float64{-32768, 0}, expected: DtypeInt16},
		{name: "int32", values: []float64{-32769, 0}, expected: DtypeInt32},
		{name: "negative_and_wide", values: []float64{-1, 40000}, expected: DtypeInt32},
		{name: "float32_exact", values: []float64{1.5, 0}, expected: DtypeFloat32},
		{name: "float64", values: []float64{1.434532, 0}, expected: DtypeFloat64},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := InferDtype(tc.values)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestInferDtype_NoFit(t *testing.T) {
	for _, values := range [][]float64{
		{20439845334323, 0},
		{-1, 4294967295},
		{-2147483649, 0},
		nil,
	} {
		_, err := InferDtype(values)
		var unsupportedErr *UnsupportedDtypeError
		assert.True(t, errors.As(err, &unsupportedErr))
	}
}
