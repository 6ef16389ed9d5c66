package rasterio

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestAffine_Forward(t *testing.T) {
	for _, tc := range []struct {
		name        string
		transform   Affine
		x, y        float64
		expectedCol float64
		expectedRow float64
	}{
		{
			name:        "identity",
			transform:   IdentityTransform(),
			x:           2.5,
			y:           3.25,
			expectedCol: 2.5,
			expectedRow: 3.25,
		},
		{
			name:        "scale_and_translate",
			transform:   Affine{A: 2, C: -1, E: 0.5, F: 4},
			x:           3,
			y:           2,
			expectedCol: 5,
			expectedRow: 5,
		},
		{
			name:        "flip_y",
			transform:   Affine{A: 1, E: -1},
			x:           1,
			y:           2,
			expectedCol: 1,
			expectedRow: -2,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			col, row := tc.transform.Forward(tc.x, tc.y)
			assert.Equal(t, tc.expectedCol, col)
			assert.Equal(t, tc.expectedRow, row)
		})
	}
}

func TestAffine_Invert(t *testing.T) {
	for _, transform := range []Affine{
		IdentityTransform(),
		{A: 1, E: -1},
		{A: 2, C: -3, E: 4, F: 5},
		{A: 0, B: 1, C: 2, D: -1, E: 0, F: 3},
	} {
		inverse, err := transform.Invert()
		assert.NoError(t, err)
		for _, coord := range [][2]float64{{0, 0}, {1, 2}, {-3.5, 7.25}} {
			col, row := transform.Forward(coord[0], coord[1])
			x, y := inverse.Forward(col, row)
			assert.Equal(t, coord[0], x)
			assert.Equal(t, coord[1], y)
		}
	}
}

func TestAffine_InvertSingular(t *testing.T) {
	_, err := Affine{A: 1, B: 2, D: 2, E: 4}.Invert()
	var singularErr *SingularTransformError
	assert.True(t, errors.As(err, &singularErr))
}
