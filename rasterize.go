package rasterio

// A GeometryValue pairs a geometry with the value burned into the cells it
// covers. A pair constructed without Pair takes the rasterizer's default
// value.
type GeometryValue struct {
	Geometry Geometry
	value    float64
	hasValue bool
}

// Pair returns a GeometryValue with an explicit burn value.
func Pair(geometry Geometry, value float64) GeometryValue {
	return GeometryValue{
		Geometry: geometry,
		value:    value,
		hasValue: true,
	}
}

type rasterizeConfig struct {
	rows         int
	cols         int
	transform    Affine
	dtype        Dtype
	fill         float64
	defaultValue float64
	allTouched   bool
	out          *Grid
}

// A RasterizeOption sets an option on a Rasterize call.
type RasterizeOption func(*rasterizeConfig)

// WithOutShape sets the shape of a freshly allocated output grid.
func WithOutShape(rows, cols int) RasterizeOption {
	return func(c *rasterizeConfig) {
		c.rows = rows
		c.cols = cols
	}
}

// WithTransform sets the geometry-to-grid transform. The default is the
// identity transform.
func WithTransform(transform Affine) RasterizeOption {
	return func(c *rasterizeConfig) {
		c.transform = transform
	}
}

// WithDtype sets the output dtype explicitly. Without it the dtype is
// inferred from the values in play. Ignored when an output grid is supplied.
func WithDtype(dtype Dtype) RasterizeOption {
	return func(c *rasterizeConfig) {
		c.dtype = dtype
	}
}

// WithFill sets the background value pre-filling a freshly allocated grid.
// The default is zero. Ignored when an output grid is supplied.
func WithFill(fill float64) RasterizeOption {
	return func(c *rasterizeConfig) {
		c.fill = fill
	}
}

// WithDefaultValue sets the value burned for pairs without an explicit
// value. The default is 1.
func WithDefaultValue(value float64) RasterizeOption {
	return func(c *rasterizeConfig) {
		c.defaultValue = value
	}
}

// WithAllTouched selects the all-touched inclusion rule: every cell touched
// by a geometry is covered, not only those whose center is inside.
func WithAllTouched(allTouched bool) RasterizeOption {
	return func(c *rasterizeConfig) {
		c.allTouched = allTouched
	}
}

// WithOut supplies an existing grid to mutate in place. Its dtype governs
// validation; a shape given with WithOutShape must agree with it.
func WithOut(out *Grid) RasterizeOption {
	return func(c *rasterizeConfig) {
		c.out = out
	}
}

// Rasterize burns each pair's value into the cells its geometry covers, in
// input order, so later pairs overwrite earlier ones where they overlap. It
// returns the supplied output grid mutated in place, or a freshly allocated
// grid otherwise. Every value in play is validated against the resolved
// dtype before any cell is written; on error, no cell has been touched.
func Rasterize(pairs []GeometryValue, options ...RasterizeOption) (*Grid, error) {
	config := rasterizeConfig{
		transform:    IdentityTransform(),
		defaultValue: 1,
	}
	for _, option := range options {
		option(&config)
	}

	if len(pairs) == 0 && config.out == nil {
		return nil, &EmptyInputError{}
	}

	// Resolve the output target before validating values against it.
	var dtype Dtype
	switch {
	case config.out != nil:
		rows, cols := config.out.Shape()
		if (config.rows != 0 || config.cols != 0) && (config.rows != rows || config.cols != cols) {
			return nil, &ShapeMismatchError{
				OutRows: rows, OutCols: cols,
				Rows: config.rows, Cols: config.cols,
			}
		}
		dtype = config.out.Dtype()
	case config.dtype != "":
		if !config.dtype.Supported() {
			return nil, &UnsupportedDtypeError{Dtype: config.dtype}
		}
		dtype = config.dtype
	default:
		inferred, err := InferDtype(valuesInPlay(pairs, config))
		if err != nil {
			return nil, err
		}
		dtype = inferred
	}

	for _, value := range valuesInPlay(pairs, config) {
		if err := ValidateValue(dtype, value); err != nil {
			return nil, err
		}
	}

	grid := config.out
	if grid == nil {
		var err error
		grid, err = NewGrid(config.rows, config.cols, dtype)
		if err != nil {
			return nil, err
		}
		if config.fill != 0 {
			grid.Fill(config.fill)
		}
	}

	for _, pair := range pairs {
		value := config.defaultValue
		if pair.hasValue {
			value = pair.value
		}
		burnGeometry(grid, pair.Geometry, value, config.transform, config.allTouched)
	}
	return grid, nil
}

// valuesInPlay returns every value that may be written: each pair's resolved
// burn value plus the fill.
func valuesInPlay(pairs []GeometryValue, config rasterizeConfig) []float64 {
	values := make([]float64, 0, len(pairs)+1)
	for _, pair := range pairs {
		if pair.hasValue {
			values = append(values, pair.value)
		} else {
			values = append(values, config.defaultValue)
		}
	}
	return append(values, config.fill)
}
