package rasterio

import (
	"iter"
	"slices"
)

type shapesConfig struct {
	mask *Mask
}

// A ShapesOption sets an option on a Shapes call.
type ShapesOption func(*shapesConfig)

// WithShapesMask excludes cells where mask is false from grouping entirely;
// they are not assigned to any output polygon.
func WithShapesMask(mask *Mask) ShapesOption {
	return func(c *shapesConfig) {
		c.mask = mask
	}
}

// Shapes groups grid cells into maximal 4-connected regions of equal value
// and returns a lazy sequence of one polygon per region, paired with the
// region's value. Polygons carry holes for enclosed regions of different
// value, with coordinates expressed in geometry space through the inverse of
// transform. Regions are emitted in row-major order of their topmost,
// leftmost cell. The sequence is single-pass: ranging over it again repeats
// the region scan from scratch.
//
// Rasterizing the emitted pairs with the same transform and shape reproduces
// the grid exactly.
func Shapes(grid *Grid, transform Affine, options ...ShapesOption) (iter.Seq2[Geometry, float64], error) {
	var config shapesConfig
	for _, option := range options {
		option(&config)
	}

	inverse, err := transform.Invert()
	if err != nil {
		return nil, err
	}
	rows, cols := grid.Shape()
	if config.mask != nil {
		maskRows, maskCols := config.mask.Shape()
		if maskRows != rows || maskCols != cols {
			return nil, &ShapeMismatchError{
				OutRows: maskRows, OutCols: maskCols,
				Rows: rows, Cols: cols,
			}
		}
	}
	mask := config.mask

	return func(yield func(Geometry, float64) bool) {
		visited := make([]bool, rows*cols)
		region := make([]bool, rows*cols)
		var cells, stack []int
		for row := range rows {
			for col := range cols {
				index := row*cols + col
				if visited[index] {
					continue
				}
				if mask != nil && !mask.At(row, col) {
					visited[index] = true
					continue
				}
				value := grid.At(row, col)

				// Flood fill the 4-connected region of equal value.
				cells = cells[:0]
				stack = append(stack[:0], index)
				visited[index] = true
				for len(stack) > 0 {
					i := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					region[i] = true
					cells = append(cells, i)
					r, c := i/cols, i%cols
					for _, neighbor := range [4][2]int{{r - 1, c}, {r + 1, c}, {r, c - 1}, {r, c + 1}} {
						nr, nc := neighbor[0], neighbor[1]
						if nr < 0 || rows <= nr || nc < 0 || cols <= nc {
							continue
						}
						ni := nr*cols + nc
						if visited[ni] || grid.At(nr, nc) != value {
							continue
						}
						if mask != nil && !mask.At(nr, nc) {
							continue
						}
						visited[ni] = true
						stack = append(stack, ni)
					}
				}

				slices.Sort(cells)
				polygon := traceRegion(region, cells, cols, inverse)
				for _, i := range cells {
					region[i] = false
				}
				if !yield(polygon, value) {
					return
				}
			}
		}
	}, nil
}

// Boundary edge directions, in screen orientation (y down).
const (
	dirRight int8 = iota
	dirDown
	dirLeft
	dirUp
)

// A boundaryEdge is one directed unit edge of a region's boundary, oriented
// so the region lies on the clockwise side. Corners are keyed
// r*(cols+1) + c.
type boundaryEdge struct {
	from int
	dir  int8
	used bool
}

// traceRegion stitches the boundary edges of a region into one exterior ring
// plus hole rings, returning the polygon in geometry space. cells must be
// sorted so that edge generation, and therefore ring starting corners and
// emission order, are deterministic.
func traceRegion(region []bool, cells []int, cols int, inverse Affine) Polygon {
	inRegion := func(r, c int) bool {
		if r < 0 || c < 0 || cols <= c {
			return false
		}
		i := r*cols + c
		return i < len(region) && region[i]
	}

	stride := cols + 1
	var edges []boundaryEdge
	outgoing := make(map[int][]int)
	addEdge := func(from int, dir int8) {
		outgoing[from] = append(outgoing[from], len(edges))
		edges = append(edges, boundaryEdge{from: from, dir: dir})
	}
	for _, i := range cells {
		r, c := i/cols, i%cols
		if !inRegion(r-1, c) {
			addEdge(r*stride+c, dirRight)
		}
		if !inRegion(r, c+1) {
			addEdge(r*stride+c+1, dirDown)
		}
		if !inRegion(r+1, c) {
			addEdge((r+1)*stride+c+1, dirLeft)
		}
		if !inRegion(r, c-1) {
			addEdge((r+1)*stride+c, dirUp)
		}
	}

	var exterior Ring
	var holes []Ring
	for start := range edges {
		if edges[start].used {
			continue
		}
		ring := walkRing(edges, outgoing, start, stride)
		if Ring(ring).Area() > 0 {
			exterior = ring
		} else {
			holes = append(holes, ring)
		}
	}

	return Polygon{
		Exterior: transformRing(exterior, inverse),
		Holes:    transformRings(holes, inverse),
	}
}

// walkRing follows boundary edges from start until the ring closes. At a
// corner where two region cells touch diagonally, two continuations exist;
// the sharper clockwise turn is taken, which keeps each ring hugging a single
// side of the boundary.
func walkRing(edges []boundaryEdge, outgoing map[int][]int, start, stride int) Ring {
	startCorner := edges[start].from
	var ring Ring
	current := start
	for {
		e := &edges[current]
		e.used = true
		ring = append(ring, cornerPoint(e.from, stride))
		to := nextCorner(e.from, e.dir, stride)
		if to == startCorner {
			ring = append(ring, cornerPoint(startCorner, stride))
			return simplifyRing(ring)
		}
		next := -1
		for _, preferred := range [3]int8{(e.dir + 1) % 4, e.dir, (e.dir + 3) % 4} {
			for _, candidate := range outgoing[to] {
				if !edges[candidate].used && edges[candidate].dir == preferred {
					next = candidate
					break
				}
			}
			if next >= 0 {
				break
			}
		}
		if next < 0 {
			// Cannot happen: every boundary corner has balanced degree.
			ring = append(ring, cornerPoint(to, stride))
			return simplifyRing(ring)
		}
		current = next
	}
}

func cornerPoint(corner, stride int) Point {
	return Point{
		X: float64(corner % stride),
		Y: float64(corner / stride),
	}
}

func nextCorner(corner int, dir int8, stride int) int {
	switch dir {
	case dirRight:
		return corner + 1
	case dirDown:
		return corner + stride
	case dirLeft:
		return corner - 1
	default:
		return corner - stride
	}
}

// simplifyRing drops vertices that sit on a straight run. All edges are
// axis-aligned, so collinearity is an exact coordinate comparison. ring must
// be closed; the result is closed.
func simplifyRing(ring Ring) Ring {
	if len(ring) < 4 {
		return ring
	}
	open := ring[:len(ring)-1]
	n := len(open)
	simplified := make(Ring, 0, n+1)
	for i := range n {
		prev := open[(i+n-1)%n]
		cur := open[i]
		next := open[(i+1)%n]
		if (prev.X == cur.X && cur.X == next.X) || (prev.Y == cur.Y && cur.Y == next.Y) {
			continue
		}
		simplified = append(simplified, cur)
	}
	return append(simplified, simplified[0])
}

func transformRing(ring Ring, inverse Affine) Ring {
	transformed := make(Ring, len(ring))
	for i, p := range ring {
		x, y := inverse.Forward(p.X, p.Y)
		transformed[i] = Point{X: x, Y: y}
	}
	return transformed
}

func transformRings(rings []Ring, inverse Affine) []Ring {
	if len(rings) == 0 {
		return nil
	}
	transformed := make([]Ring, len(rings))
	for i, ring := range rings {
		transformed[i] = transformRing(ring, inverse)
	}
	return transformed
}
