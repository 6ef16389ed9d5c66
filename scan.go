package rasterio

import (
	"math"
	"slices"
)

// burnGeometry writes value into every cell of grid covered by geom, with
// geom mapped into grid space by transform. Cells outside the grid are
// dropped. Coverage follows the default rule (a cell is covered when its
// center lies inside the geometry, lower/left boundary inclusive) unless
// allTouched is set, which additionally covers every cell any boundary
// segment passes through.
func burnGeometry(grid *Grid, geom Geometry, value float64, transform Affine, allTouched bool) {
	switch geom := geom.(type) {
	case Point:
		burnPoint(grid, geom, value, transform)
	case MultiPoint:
		for _, p := range geom {
			burnPoint(grid, p, value, transform)
		}
	case LineString:
		burnLineString(grid, geom, value, transform)
	case MultiLineString:
		for _, l := range geom {
			burnLineString(grid, l, value, transform)
		}
	case Polygon:
		burnPolygon(grid, geom, value, transform, allTouched)
	case MultiPolygon:
		for _, p := range geom {
			burnPolygon(grid, p, value, transform, allTouched)
		}
	}
}

// burnCell writes value at (row, col) if it is on the grid.
func burnCell(grid *Grid, row, col int, value float64) {
	if row < 0 || grid.rows <= row || col < 0 || grid.cols <= col {
		return
	}
	grid.Set(row, col, value)
}

// burnPoint covers the single cell containing p under both inclusion rules.
func burnPoint(grid *Grid, p Point, value float64, transform Affine) {
	col, row := transform.Forward(p.X, p.Y)
	burnCell(grid, int(math.Floor(row)), int(math.Floor(col)), value)
}

// burnLineString covers every cell the centerline passes through. Lines have
// no interior, so both inclusion rules are identical.
func burnLineString(grid *Grid, line LineString, value float64, transform Affine) {
	if len(line) < 2 {
		return
	}
	prevCol, prevRow := transform.Forward(line[0].X, line[0].Y)
	for _, p := range line[1:] {
		col, row := transform.Forward(p.X, p.Y)
		walkSegment(grid, prevCol, prevRow, col, row, value)
		prevCol, prevRow = col, row
	}
}

// burnPolygon covers cells by even-odd scanline parity through each row's
// vertical center, holes subtracting from the exterior. Under allTouched the
// boundary rings are additionally walked so that cells merely grazed by an
// edge are covered too.
func burnPolygon(grid *Grid, poly Polygon, value float64, transform Affine, allTouched bool) {
	rings := poly.rings()
	gridRings := make([][]Point, 0, len(rings))
	bounds := emptyBounds()
	for _, ring := range rings {
		if len(ring) < 4 {
			continue
		}
		pts := make([]Point, len(ring))
		for i, p := range ring {
			col, row := transform.Forward(p.X, p.Y)
			pts[i] = Point{X: col, Y: row}
			bounds = bounds.ExtendPoint(col, row)
		}
		gridRings = append(gridRings, pts)
	}
	if bounds.Empty() ||
		bounds.MaxX < 0 || float64(grid.cols) < bounds.MinX ||
		bounds.MaxY < 0 || float64(grid.rows) < bounds.MinY {
		return
	}

	// Interior fill. A horizontal scanline through the row's vertical center
	// crosses the boundary at xs; cells whose center falls in an odd-parity
	// interval [x0, x1) are covered. The half-open interval and the strict
	// comparisons below give the lower/left-inclusive tie-break, so adjacent
	// polygons tile without gaps or double counting.
	rowStart := max(0, int(math.Ceil(bounds.MinY-0.5)))
	rowEnd := min(grid.rows-1, int(math.Floor(bounds.MaxY-0.5)))
	var xs []float64
	for row := rowStart; row <= rowEnd; row++ {
		yCenter := float64(row) + 0.5
		xs = xs[:0]
		for _, ring := range gridRings {
			for i := 0; i+1 < len(ring); i++ {
				p0, p1 := ring[i], ring[i+1]
				if (p0.Y > yCenter) == (p1.Y > yCenter) {
					continue
				}
				xs = append(xs, p0.X+(yCenter-p0.Y)*(p1.X-p0.X)/(p1.Y-p0.Y))
			}
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			colStart := max(0, int(math.Ceil(xs[i]-0.5)))
			colEnd := min(grid.cols-1, int(math.Ceil(xs[i+1]-0.5))-1)
			for col := colStart; col <= colEnd; col++ {
				grid.Set(row, col, value)
			}
		}
	}

	if !allTouched {
		return
	}
	for _, ring := range gridRings {
		for i := 0; i+1 < len(ring); i++ {
			walkSegment(grid, ring[i].X, ring[i].Y, ring[i+1].X, ring[i+1].Y, value)
		}
	}
}

// walkSegment burns every cell the segment from (x0, y0) to (x1, y1) passes
// through, in continuous grid coordinates. The traversal steps one cell
// boundary at a time in x-distance order, so no crossed cell is skipped.
// Coordinates exactly on a cell boundary belong to the lower/left cell's
// right neighbor, consistent with the polygon tie-break.
func walkSegment(grid *Grid, x0, y0, x1, y1 float64, value float64) {
	var ok bool
	x0, y0, x1, y1, ok = clipSegment(x0, y0, x1, y1, -1, -1, float64(grid.cols)+1, float64(grid.rows)+1)
	if !ok {
		return
	}

	col := int(math.Floor(x0))
	row := int(math.Floor(y0))
	colEnd := int(math.Floor(x1))
	rowEnd := int(math.Floor(y1))
	burnCell(grid, row, col, value)

	dx := x1 - x0
	dy := y1 - y0
	stepCol, stepRow := 0, 0
	tMaxX, tMaxY := math.Inf(1), math.Inf(1)
	tDeltaX, tDeltaY := 0.0, 0.0
	if colEnd > col {
		stepCol = 1
		tMaxX = (float64(col+1) - x0) / dx
		tDeltaX = 1 / dx
	} else if colEnd < col {
		stepCol = -1
		tMaxX = (x0 - float64(col)) / -dx
		tDeltaX = -1 / dx
	}
	if rowEnd > row {
		stepRow = 1
		tMaxY = (float64(row+1) - y0) / dy
		tDeltaY = 1 / dy
	} else if rowEnd < row {
		stepRow = -1
		tMaxY = (y0 - float64(row)) / -dy
		tDeltaY = -1 / dy
	}

	remaining := abs(colEnd-col) + abs(rowEnd-row)
	for range remaining {
		if stepCol != 0 && col != colEnd && (tMaxX <= tMaxY || row == rowEnd) {
			col += stepCol
			tMaxX += tDeltaX
		} else {
			row += stepRow
			tMaxY += tDeltaY
		}
		burnCell(grid, row, col, value)
	}
}

// clipSegment clips the segment to the rectangle [xMin, xMax] x [yMin, yMax]
// (Liang-Barsky). ok is false when the segment lies entirely outside.
func clipSegment(x0, y0, x1, y1, xMin, yMin, xMax, yMax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	t0, t1 := 0.0, 1.0
	dx := x1 - x0
	dy := y1 - y0
	for _, edge := range [4][2]float64{
		{-dx, x0 - xMin},
		{dx, xMax - x0},
		{-dy, y0 - yMin},
		{dy, yMax - y0},
	} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
