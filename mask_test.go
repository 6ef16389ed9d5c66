package rasterio_test

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/PhilippeGouin/rasterio"
)

func TestGeometryMask(t *testing.T) {
	mask, err := rasterio.GeometryMask(
		[]rasterio.Geometry{unitSquare(1, 1)},
		3, 3,
		rasterio.IdentityTransform(),
	)
	assert.NoError(t, err)
	for row := range 3 {
		for col := range 3 {
			assert.Equal(t, !(row == 1 && col == 1), mask.At(row, col))
		}
	}
}

func TestGeometryMask_Invert(t *testing.T) {
	mask, err := rasterio.GeometryMask(
		[]rasterio.Geometry{unitSquare(1, 1)},
		3, 3,
		rasterio.IdentityTransform(),
		rasterio.WithMaskInvert(true),
	)
	assert.NoError(t, err)
	for row := range 3 {
		for col := range 3 {
			assert.Equal(t, row == 1 && col == 1, mask.At(row, col))
		}
	}
}

func TestGeometryMask_AllTouched(t *testing.T) {
	polygon := rasterio.Polygon{
		Exterior: rasterio.Ring{
			{X: 0.5, Y: 0.5}, {X: 0.5, Y: 1.5}, {X: 1.5, Y: 1.5}, {X: 1.5, Y: 0.5}, {X: 0.5, Y: 0.5},
		},
	}

	countMasked := func(options ...rasterio.GeometryMaskOption) int {
		mask, err := rasterio.GeometryMask([]rasterio.Geometry{polygon}, 3, 3, rasterio.IdentityTransform(), options...)
		assert.NoError(t, err)
		n := 0
		for row := range 3 {
			for col := range 3 {
				if !mask.At(row, col) {
					n++
				}
			}
		}
		return n
	}

	assert.Equal(t, 1, countMasked())
	assert.Equal(t, 4, countMasked(rasterio.WithMaskAllTouched(true)))
}

func TestGeometryMask_EmptyInput(t *testing.T) {
	_, err := rasterio.GeometryMask(nil, 3, 3, rasterio.IdentityTransform())
	var emptyInputErr *rasterio.EmptyInputError
	assert.True(t, errors.As(err, &emptyInputErr))
}
