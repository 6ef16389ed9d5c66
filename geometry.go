package rasterio

// A Geometry is one of Point, MultiPoint, LineString, MultiLineString,
// Polygon, or MultiPolygon. The set of variants is closed; scan conversion
// dispatches exhaustively over it.
type Geometry interface {
	// Bounds returns the geometry's bounding box in geometry space.
	Bounds() Bounds

	isGeometry()
}

// A Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// emptyBounds is an inverted box that extends to nothing.
func emptyBounds() Bounds {
	return Bounds{
		MinX: 1, MinY: 1,
		MaxX: -1, MaxY: -1,
	}
}

// Empty reports whether b contains no points.
func (b Bounds) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// ExtendPoint grows b to include (x, y).
func (b Bounds) ExtendPoint(x, y float64) Bounds {
	if b.Empty() {
		return Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y}
	}
	return Bounds{
		MinX: min(b.MinX, x),
		MinY: min(b.MinY, y),
		MaxX: max(b.MaxX, x),
		MaxY: max(b.MaxY, y),
	}
}

// Extend grows b to include all of other.
func (b Bounds) Extend(other Bounds) Bounds {
	if other.Empty() {
		return b
	}
	if b.Empty() {
		return other
	}
	return Bounds{
		MinX: min(b.MinX, other.MinX),
		MinY: min(b.MinY, other.MinY),
		MaxX: max(b.MaxX, other.MaxX),
		MaxY: max(b.MaxY, other.MaxY),
	}
}

// A Point is a single coordinate pair in geometry space.
type Point struct {
	X float64
	Y float64
}

func (p Point) Bounds() Bounds {
	return Bounds{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
}

func (Point) isGeometry() {}

// A MultiPoint is a collection of Points.
type MultiPoint []Point

func (m MultiPoint) Bounds() Bounds {
	b := emptyBounds()
	for _, p := range m {
		b = b.ExtendPoint(p.X, p.Y)
	}
	return b
}

func (MultiPoint) isGeometry() {}

// A LineString is an ordered sequence of at least two coordinate pairs.
type LineString []Point

func (l LineString) Bounds() Bounds {
	b := emptyBounds()
	for _, p := range l {
		b = b.ExtendPoint(p.X, p.Y)
	}
	return b
}

func (LineString) isGeometry() {}

// A MultiLineString is a collection of LineStrings.
type MultiLineString []LineString

func (m MultiLineString) Bounds() Bounds {
	b := emptyBounds()
	for _, l := range m {
		b = b.Extend(l.Bounds())
	}
	return b
}

func (MultiLineString) isGeometry() {}

// A Ring is a closed sequence of coordinate pairs: the first and last
// coordinates are equal. Either winding is accepted.
type Ring []Point

// Closed reports whether r has at least four coordinates and its first and
// last coordinates are equal.
func (r Ring) Closed() bool {
	return len(r) >= 4 && r[0] == r[len(r)-1]
}

// Area returns r's signed area by the shoelace formula. The sign depends on
// winding.
func (r Ring) Area() float64 {
	var sum float64
	for i := 0; i+1 < len(r); i++ {
		sum += r[i].X*r[i+1].Y - r[i+1].X*r[i].Y
	}
	return sum / 2
}

// A Polygon is an exterior ring and zero or more interior hole rings. Holes
// subtract coverage from the exterior.
type Polygon struct {
	Exterior Ring
	Holes    []Ring
}

func (p Polygon) Bounds() Bounds {
	b := emptyBounds()
	for _, pt := range p.Exterior {
		b = b.ExtendPoint(pt.X, pt.Y)
	}
	return b
}

func (Polygon) isGeometry() {}

// rings returns the exterior and hole rings as one slice.
func (p Polygon) rings() []Ring {
	rings := make([]Ring, 0, 1+len(p.Holes))
	if len(p.Exterior) > 0 {
		rings = append(rings, p.Exterior)
	}
	for _, hole := range p.Holes {
		if len(hole) > 0 {
			rings = append(rings, hole)
		}
	}
	return rings
}

// A MultiPolygon is a collection of Polygons.
type MultiPolygon []Polygon

func (m MultiPolygon) Bounds() Bounds {
	b := emptyBounds()
	for _, p := range m {
		b = b.Extend(p.Bounds())
	}
	return b
}

func (MultiPolygon) isGeometry() {}
