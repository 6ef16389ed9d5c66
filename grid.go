package rasterio

import "errors"

var errInvalidShape = errors.New("rows and cols must both be positive")

// A Grid is a dense row-major 2D array of a single dtype, addressed
// [row][col] with the origin at the top left. The backing store is float64:
// every supported dtype's values round-trip through float64 exactly, and
// validation rejects anything that would not.
type Grid struct {
	dtype Dtype
	rows  int
	cols  int
	data  []float64
}

// NewGrid returns a zero-filled grid of the given shape and dtype.
func NewGrid(rows, cols int, dtype Dtype) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errInvalidShape
	}
	if !dtype.Supported() {
		return nil, &UnsupportedDtypeError{Dtype: dtype}
	}
	return &Grid{
		dtype: dtype,
		rows:  rows,
		cols:  cols,
		data:  make([]float64, rows*cols),
	}, nil
}

// Dtype returns g's dtype.
func (g *Grid) Dtype() Dtype {
	return g.dtype
}

// Shape returns g's (rows, cols).
func (g *Grid) Shape() (rows, cols int) {
	return g.rows, g.cols
}

// At returns the value at (row, col).
func (g *Grid) At(row, col int) float64 {
	return g.data[row*g.cols+col]
}

// Set writes value at (row, col), narrowing to g's dtype.
func (g *Grid) Set(row, col int, value float64) {
	g.data[row*g.cols+col] = g.dtype.quantize(value)
}

// Fill writes value into every cell.
func (g *Grid) Fill(value float64) {
	value = g.dtype.quantize(value)
	for i := range g.data {
		g.data[i] = value
	}
}

// Equal reports whether g and other have the same dtype, shape, and cell
// values.
func (g *Grid) Equal(other *Grid) bool {
	if g.dtype != other.dtype || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, value := range g.data {
		if other.data[i] != value {
			return false
		}
	}
	return true
}

// A Mask is a dense row-major 2D array of booleans with the same addressing
// as a Grid.
type Mask struct {
	rows int
	cols int
	data []bool
}

// NewMask returns an all-false mask of the given shape.
func NewMask(rows, cols int) (*Mask, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errInvalidShape
	}
	return &Mask{
		rows: rows,
		cols: cols,
		data: make([]bool, rows*cols),
	}, nil
}

// Shape returns m's (rows, cols).
func (m *Mask) Shape() (rows, cols int) {
	return m.rows, m.cols
}

// At returns the value at (row, col).
func (m *Mask) At(row, col int) bool {
	return m.data[row*m.cols+col]
}

// Set writes value at (row, col).
func (m *Mask) Set(row, col int, value bool) {
	m.data[row*m.cols+col] = value
}

// Invert negates every cell in place.
func (m *Mask) Invert() {
	for i := range m.data {
		m.data[i] = !m.data[i]
	}
}

// Equal reports whether m and other have the same shape and cell values.
func (m *Mask) Equal(other *Mask) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, value := range m.data {
		if other.data[i] != value {
			return false
		}
	}
	return true
}
