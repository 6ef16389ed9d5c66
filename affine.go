package rasterio

// An Affine is a 2D affine transform mapping geometry coordinates to
// continuous grid coordinates:
//
//	col = A*x + B*y + C
//	row = D*x + E*y + F
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// IdentityTransform returns the transform under which grid coordinates equal
// geometry coordinates.
func IdentityTransform() Affine {
	return Affine{A: 1, E: 1}
}

// Forward maps a geometry coordinate to a continuous (col, row) grid
// coordinate.
func (t Affine) Forward(x, y float64) (col, row float64) {
	return t.A*x + t.B*y + t.C, t.D*x + t.E*y + t.F
}

// Determinant returns the determinant of t's linear part.
func (t Affine) Determinant() float64 {
	return t.A*t.E - t.B*t.D
}

// Invert returns the transform mapping grid coordinates back to geometry
// coordinates. It returns a *SingularTransformError if t is not invertible.
func (t Affine) Invert() (Affine, error) {
	det := t.Determinant()
	if det == 0 {
		return Affine{}, &SingularTransformError{Transform: t}
	}
	return Affine{
		A: t.E / det,
		B: -t.B / det,
		C: (t.B*t.F - t.C*t.E) / det,
		D: -t.D / det,
		E: t.A / det,
		F: (t.C*t.D - t.A*t.F) / det,
	}, nil
}
