package rasterio

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

// coveredCells burns geom into a fresh rows x cols grid and returns the
// covered (row, col) cells in row-major order.
func coveredCells(t *testing.T, geom Geometry, rows, cols int, allTouched bool) [][2]int {
	t.Helper()
	grid, err := NewGrid(rows, cols, DtypeUint8)
	assert.NoError(t, err)
	burnGeometry(grid, geom, 1, IdentityTransform(), allTouched)
	var cells [][2]int
	for row := range rows {
		for col := range cols {
			if grid.At(row, col) != 0 {
				cells = append(cells, [2]int{row, col})
			}
		}
	}
	return cells
}

func TestBurnPoint(t *testing.T) {
	for _, tc := range []struct {
		name     string
		point    Point
		expected [][2]int
	}{
		{name: "interior", point: Point{X: 2.5, Y: 3.5}, expected: [][2]int{{3, 2}}},
		{name: "on_boundary", point: Point{X: 2, Y: 2}, expected: [][2]int{{2, 2}}},
		{name: "off_grid", point: Point{X: -1, Y: 20}, expected: nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, coveredCells(t, tc.point, 10, 10, false))
		})
	}
}

func TestBurnLineString(t *testing.T) {
	for _, tc := range []struct {
		name     string
		line     LineString
		expected [][2]int
	}{
		{
			name:     "horizontal",
			line:     LineString{{X: 0.5, Y: 0.5}, {X: 3.5, Y: 0.5}},
			expected: [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		},
		{
			name:     "vertical",
			line:     LineString{{X: 1.5, Y: 0.5}, {X: 1.5, Y: 2.5}},
			expected: [][2]int{{0, 1}, {1, 1}, {2, 1}},
		},
		{
			name:     "diagonal_through_corners",
			line:     LineString{{X: 0.5, Y: 0.5}, {X: 2.5, Y: 2.5}},
			expected: [][2]int{{0, 0}, {0, 1}, {1, 1}, {1, 2}, {2, 2}},
		},
		{
			name:     "single_point",
			line:     LineString{{X: 0.5, Y: 0.5}},
			expected: nil,
		},
		{
			name:     "clipped",
			line:     LineString{{X: -100, Y: 1.5}, {X: 100, Y: 1.5}},
			expected: [][2]int{{1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 4}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, coveredCells(t, tc.line, 5, 5, false))
		})
	}
}

func TestBurnLineString_RulesIdentical(t *testing.T) {
	line := LineString{{X: 0.1, Y: 0.9}, {X: 4.3, Y: 2.2}}
	assert.Equal(t,
		coveredCells(t, line, 5, 5, false),
		coveredCells(t, line, 5, 5, true),
	)
}

func TestBurnPolygon_DefaultRule(t *testing.T) {
	polygon := Polygon{
		Exterior: Ring{{X: 2, Y: 2}, {X: 2, Y: 4.25}, {X: 4.25, Y: 4.25}, {X: 4.25, Y: 2}, {X: 2, Y: 2}},
	}
	assert.Equal(t, [][2]int{
		{2, 2}, {2, 3},
		{3, 2}, {3, 3},
	}, coveredCells(t, polygon, 10, 10, false))
}

func TestBurnPolygon_AllTouched(t *testing.T) {
	polygon := Polygon{
		Exterior: Ring{{X: 2, Y: 2}, {X: 2, Y: 4.25}, {X: 4.25, Y: 4.25}, {X: 4.25, Y: 2}, {X: 2, Y: 2}},
	}
	assert.Equal(t, [][2]int{
		{2, 2}, {2, 3}, {2, 4},
		{3, 2}, {3, 3}, {3, 4},
		{4, 2}, {4, 3}, {4, 4},
	}, coveredCells(t, polygon, 10, 10, true))
}

func TestBurnPolygon_AllTouchedSuperset(t *testing.T) {
	geometries := []Geometry{
		Polygon{Exterior: Ring{{X: 0.3, Y: 0.7}, {X: 7.9, Y: 2.1}, {X: 4.4, Y: 6.6}, {X: 0.3, Y: 0.7}}},
		Polygon{
			Exterior: Ring{{X: 1, Y: 1}, {X: 1, Y: 8}, {X: 8, Y: 8}, {X: 8, Y: 1}, {X: 1, Y: 1}},
			Holes:    []Ring{{{X: 3, Y: 3}, {X: 6, Y: 3}, {X: 6, Y: 6}, {X: 3, Y: 6}, {X: 3, Y: 3}}},
		},
		MultiPolygon{
			{Exterior: Ring{{X: 0.5, Y: 0.5}, {X: 2.5, Y: 0.5}, {X: 1.5, Y: 3.5}, {X: 0.5, Y: 0.5}}},
			{Exterior: Ring{{X: 5.25, Y: 5.25}, {X: 9.75, Y: 5.5}, {X: 7.5, Y: 9.9}, {X: 5.25, Y: 5.25}}},
		},
	}
	for _, geometry := range geometries {
		defaultCells := coveredCells(t, geometry, 10, 10, false)
		allTouchedCells := coveredCells(t, geometry, 10, 10, true)
		allTouchedSet := make(map[[2]int]bool, len(allTouchedCells))
		for _, cell := range allTouchedCells {
			allTouchedSet[cell] = true
		}
		for _, cell := range defaultCells {
			assert.True(t, allTouchedSet[cell])
		}
	}
}

func TestBurnPolygon_Holes(t *testing.T) {
	polygon := Polygon{
		Exterior: Ring{{X: 0, Y: 0}, {X: 0, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 0}, {X: 0, Y: 0}},
		Holes:    []Ring{{{X: 1, Y: 1}, {X: 1, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 1}, {X: 1, Y: 1}}},
	}
	assert.Equal(t, [][2]int{
		{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4},
		{1, 0}, {1, 4},
		{2, 0}, {2, 4},
		{3, 0}, {3, 4},
		{4, 0}, {4, 1}, {4, 2}, {4, 3}, {4, 4},
	}, coveredCells(t, polygon, 5, 5, false))
}

func TestBurnPolygon_AdjacentPolygonsTile(t *testing.T) {
	// Two polygons sharing the boundary x=3 must neither double-count nor
	// leave a gap.
	left := Polygon{Exterior: Ring{{X: 0, Y: 0}, {X: 0, Y: 5}, {X: 3, Y: 5}, {X: 3, Y: 0}, {X: 0, Y: 0}}}
	right := Polygon{Exterior: Ring{{X: 3, Y: 0}, {X: 3, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 0}, {X: 3, Y: 0}}}

	grid, err := NewGrid(5, 5, DtypeUint8)
	assert.NoError(t, err)
	burnGeometry(grid, left, 1, IdentityTransform(), false)
	burnGeometry(grid, right, 2, IdentityTransform(), false)
	for row := range 5 {
		for col := range 5 {
			if col < 3 {
				assert.Equal(t, 1.0, grid.At(row, col))
			} else {
				assert.Equal(t, 2.0, grid.At(row, col))
			}
		}
	}
}

func TestBurnPolygon_Degenerate(t *testing.T) {
	for _, tc := range []struct {
		name     string
		geometry Geometry
	}{
		{name: "empty_rings", geometry: Polygon{}},
		{name: "zero_area", geometry: Polygon{Exterior: Ring{{X: 1, Y: 1}, {X: 4, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}}}},
		{name: "off_grid", geometry: Polygon{Exterior: Ring{{X: 100, Y: 100}, {X: 100, Y: 105}, {X: 105, Y: 105}, {X: 100, Y: 100}}}},
		{name: "too_few_points", geometry: Polygon{Exterior: Ring{{X: 1, Y: 1}, {X: 2, Y: 2}}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, [][2]int(nil), coveredCells(t, tc.geometry, 10, 10, false))
		})
	}
}

func TestClipSegment(t *testing.T) {
	x0, y0, x1, y1, ok := clipSegment(-10, 5, 20, 5, 0, 0, 10, 10)
	assert.True(t, ok)
	assert.Equal(t, 0.0, x0)
	assert.Equal(t, 5.0, y0)
	assert.Equal(t, 10.0, x1)
	assert.Equal(t, 5.0, y1)

	_, _, _, _, ok = clipSegment(-10, -5, -1, -5, 0, 0, 10, 10)
	assert.False(t, ok)
}
