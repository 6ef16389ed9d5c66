package rasterio

type geometryMaskConfig struct {
	allTouched bool
	invert     bool
}

// A GeometryMaskOption sets an option on a GeometryMask call.
type GeometryMaskOption func(*geometryMaskConfig)

// WithMaskAllTouched selects the all-touched inclusion rule for the mask.
func WithMaskAllTouched(allTouched bool) GeometryMaskOption {
	return func(c *geometryMaskConfig) {
		c.allTouched = allTouched
	}
}

// WithMaskInvert negates the mask: cells covered by the geometries become
// true instead of false.
func WithMaskInvert(invert bool) GeometryMaskOption {
	return func(c *geometryMaskConfig) {
		c.invert = invert
	}
}

// GeometryMask rasterizes geometries into a boolean mask of the given shape.
// By default cells covered by a geometry are false and all others true, the
// polarity expected when masking out everything beyond the geometries;
// WithMaskInvert flips every cell. Coverage follows the default inclusion
// rule of Rasterize unless WithMaskAllTouched is set.
func GeometryMask(geometries []Geometry, rows, cols int, transform Affine, options ...GeometryMaskOption) (*Mask, error) {
	var config geometryMaskConfig
	for _, option := range options {
		option(&config)
	}

	pairs := make([]GeometryValue, len(geometries))
	for i, geometry := range geometries {
		pairs[i] = Pair(geometry, 1)
	}
	grid, err := Rasterize(pairs,
		WithOutShape(rows, cols),
		WithTransform(transform),
		WithDtype(DtypeUint8),
		WithAllTouched(config.allTouched),
	)
	if err != nil {
		return nil, err
	}

	mask, err := NewMask(rows, cols)
	if err != nil {
		return nil, err
	}
	for row := range rows {
		for col := range cols {
			mask.Set(row, col, grid.At(row, col) == 0)
		}
	}
	if config.invert {
		mask.Invert()
	}
	return mask, nil
}
