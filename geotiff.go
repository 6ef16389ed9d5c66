package rasterio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/google/tiff"
	_ "github.com/google/tiff/bigtiff"
	_ "github.com/google/tiff/geotiff"
	"github.com/maypok86/otter/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/image/tiff/lzw"
)

var (
	errShortRead = errors.New("short read")

	geoTIFFTileCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rasterio_geotiff_tile_cache_hits_total",
		Help: "The total number of hits on the GeoTIFF tile cache",
	})
	geoTIFFTileCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rasterio_geotiff_tile_cache_misses_total",
		Help: "The total number of misses on the GeoTIFF tile cache",
	})
)

// A tileCoord addresses one tile within a tiled GeoTIFF.
type tileCoord struct {
	C int // Column.
	R int // Row.
}

// A geoTIFFIFD is a struct into which github.com/google/tiff can unmarshal
// an IFD.
type geoTIFFIFD struct {
	ImageWidth                uint16    `tiff:"field,tag=256"`
	ImageLength               uint16    `tiff:"field,tag=257"`
	BitsPerSample             uint16    `tiff:"field,tag=258"`
	Compression               uint16    `tiff:"field,tag=259"`
	PhotometricInterpretation uint16    `tiff:"field,tag=262"`
	SamplesPerPixel           uint16    `tiff:"field,tag=277"`
	PlanarConfiguration       uint16    `tiff:"field,tag=284"`
	Predictor                 uint16    `tiff:"field,tag=317"`
	TileWidth                 uint16    `tiff:"field,tag=322"`
	TileLength                uint16    `tiff:"field,tag=323"`
	TileOffsets               []uint64  `tiff:"field,tag=324"`
	TileByteCounts            []uint64  `tiff:"field,tag=325"`
	SampleFormat              uint16    `tiff:"field,tag=339"`
	ModelPixelScaleTag        []float64 `tiff:"field,tag=33550"`
	ModelTiepointTag          []float64 `tiff:"field,tag=33922"`
	GeoKeyDirectoryTag        []uint16  `tiff:"field,tag=34735"`
	GeoDoubleParamsTag        []float64 `tiff:"field,tag=34736"`
	GeoASCIIParamsTag         string    `tiff:"field,tag=34737"`
}

// A GeoTIFFGrid is an open, tiled, LZW-compressed single-band GeoTIFF whose
// cells can be read into grids. It is the boundary between this engine and
// raster storage: Read and ReadWindow produce the grids that Shapes
// consumes.
type GeoTIFFGrid struct {
	file               *os.File
	dtype              Dtype
	rows               int
	cols               int
	tileWidth          int
	tileLength         int
	tilesAcross        int
	tilesDown          int
	tileOffsets        []uint64
	tileByteCounts     []uint64
	tileSampleCount    int
	tileByteCount      int
	bytesPerSample     int
	transform          Affine
	srid               int
	citation           string
	tileCacheSizeBytes int
	tileCache          *otter.Cache[tileCoord, []float64]
}

// A GeoTIFFOption sets an option on a GeoTIFFGrid.
type GeoTIFFOption func(*GeoTIFFGrid)

// WithTileCacheSize sets the decoded-tile cache size in bytes.
func WithTileCacheSize(tileCacheSizeBytes int) GeoTIFFOption {
	return func(g *GeoTIFFGrid) {
		g.tileCacheSizeBytes = tileCacheSizeBytes
	}
}

// OpenGeoTIFF opens a GeoTIFF file for reading.
func OpenGeoTIFF(fsys fs.FS, filename string, options ...GeoTIFFOption) (*GeoTIFFGrid, error) {
	ok := false

	g := &GeoTIFFGrid{
		tileCacheSizeBytes: 128 << 20, // 128MB.
	}
	for _, option := range options {
		option(g)
	}

	file, err := fsys.Open(filename)
	if err != nil {
		return nil, err
	}
	osFile, isOSFile := file.(*os.File)
	if !isOSFile {
		return nil, errors.ErrUnsupported
	}
	g.file = osFile
	defer func() {
		if !ok {
			_ = g.file.Close()
		}
	}()

	tiffTIFF, err := tiff.Parse(g.file, tiff.GetTagSpace("GeoTIFF"), nil)
	if err != nil {
		return nil, err
	}
	if len(tiffTIFF.IFDs()) != 1 {
		return nil, fmt.Errorf("found %d IFDs, expected 1", len(tiffTIFF.IFDs()))
	}
	var ifd geoTIFFIFD
	if err := tiff.UnmarshalIFD(tiffTIFF.IFDs()[0], &ifd); err != nil {
		return nil, err
	}

	dtype, dtypeOK := geoTIFFDtype(ifd.BitsPerSample, ifd.SampleFormat)
	if !dtypeOK ||
		ifd.Compression != 5 ||
		ifd.SamplesPerPixel != 1 ||
		ifd.PlanarConfiguration != 1 ||
		ifd.Predictor != 1 {
		return nil, errors.ErrUnsupported
	}
	g.dtype = dtype
	g.bytesPerSample = int(ifd.BitsPerSample) / 8

	g.cols = int(ifd.ImageWidth)
	g.rows = int(ifd.ImageLength)
	g.tileWidth = int(ifd.TileWidth)
	g.tileLength = int(ifd.TileLength)
	if g.cols == 0 || g.rows == 0 || g.tileWidth == 0 || g.tileLength == 0 {
		return nil, errors.ErrUnsupported
	}
	g.tilesAcross = (g.cols + g.tileWidth - 1) / g.tileWidth
	g.tilesDown = (g.rows + g.tileLength - 1) / g.tileLength
	tilesPerImage := g.tilesAcross * g.tilesDown
	if len(ifd.TileByteCounts) != tilesPerImage || len(ifd.TileOffsets) != tilesPerImage {
		return nil, errors.New("incorrect number of tile byte counts or offsets")
	}
	g.tileOffsets = ifd.TileOffsets
	g.tileByteCounts = ifd.TileByteCounts
	g.tileSampleCount = g.tileWidth * g.tileLength
	g.tileByteCount = g.tileSampleCount * g.bytesPerSample

	g.transform, err = geoTIFFTransform(ifd.ModelPixelScaleTag, ifd.ModelTiepointTag)
	if err != nil {
		return nil, err
	}

	keys, err := parseGeoKeys(ifd.GeoKeyDirectoryTag, ifd.GeoDoubleParamsTag, ifd.GeoASCIIParamsTag)
	if err != nil {
		return nil, err
	}
	g.srid = keys.srid()
	g.citation = keys.citation()

	tileCacheCount := max(g.tileCacheSizeBytes/(8*g.tileSampleCount), 1)
	g.tileCache, err = otter.New(&otter.Options[tileCoord, []float64]{
		MaximumSize: tileCacheCount,
	})
	if err != nil {
		return nil, err
	}

	ok = true
	return g, nil
}

func (g *GeoTIFFGrid) Close() error {
	return g.file.Close()
}

// Dtype returns the dtype of the raster's samples.
func (g *GeoTIFFGrid) Dtype() Dtype {
	return g.dtype
}

// Shape returns the raster's full (rows, cols).
func (g *GeoTIFFGrid) Shape() (rows, cols int) {
	return g.rows, g.cols
}

// SRID returns the EPSG code of the raster's CRS, or 0 when unknown.
func (g *GeoTIFFGrid) SRID() int {
	return g.srid
}

// Citation returns the raster's citation string, if any.
func (g *GeoTIFFGrid) Citation() string {
	return g.citation
}

// Transform returns the geometry-to-grid transform of the full raster.
func (g *GeoTIFFGrid) Transform() Affine {
	return g.transform
}

// WindowTransform returns the geometry-to-grid transform for a window whose
// top-left cell is (row0, col0) of the full raster.
func (g *GeoTIFFGrid) WindowTransform(row0, col0 int) Affine {
	t := g.transform
	t.C -= float64(col0)
	t.F -= float64(row0)
	return t
}

// Read reads the whole raster into a grid.
func (g *GeoTIFFGrid) Read(ctx context.Context) (*Grid, error) {
	return g.ReadWindow(ctx, 0, 0, g.rows, g.cols)
}

// ReadWindow reads a window of the raster into a grid, touching only the
// tiles the window intersects.
func (g *GeoTIFFGrid) ReadWindow(ctx context.Context, row0, col0, rows, cols int) (*Grid, error) {
	if row0 < 0 || col0 < 0 || rows <= 0 || cols <= 0 || g.rows < row0+rows || g.cols < col0+cols {
		return nil, fmt.Errorf("window (%d, %d, %d, %d) out of bounds", row0, col0, rows, cols)
	}
	grid, err := NewGrid(rows, cols, g.dtype)
	if err != nil {
		return nil, err
	}

	for tileRow := row0 / g.tileLength; tileRow <= (row0+rows-1)/g.tileLength; tileRow++ {
		for tileCol := col0 / g.tileWidth; tileCol <= (col0+cols-1)/g.tileWidth; tileCol++ {
			samples, err := g.getTileSamplesCached(ctx, tileCoord{C: tileCol, R: tileRow})
			if err != nil {
				return nil, err
			}
			tileRow0 := tileRow * g.tileLength
			tileCol0 := tileCol * g.tileWidth
			rowStart := max(row0, tileRow0)
			rowEnd := min(row0+rows, tileRow0+g.tileLength, g.rows)
			colStart := max(col0, tileCol0)
			colEnd := min(col0+cols, tileCol0+g.tileWidth, g.cols)
			for r := rowStart; r < rowEnd; r++ {
				for c := colStart; c < colEnd; c++ {
					grid.Set(r-row0, c-col0, samples[(r-tileRow0)*g.tileWidth+(c-tileCol0)])
				}
			}
		}
	}
	return grid, nil
}

// getTileSamplesCached returns the decoded samples of the tile at tc, using
// g's cache.
func (g *GeoTIFFGrid) getTileSamplesCached(ctx context.Context, tc tileCoord) ([]float64, error) {
	loaded := false
	samples, err := g.tileCache.Get(ctx, tc, otter.LoaderFunc[tileCoord, []float64](func(ctx context.Context, tc tileCoord) ([]float64, error) {
		loaded = true
		geoTIFFTileCacheMisses.Inc()
		return g.loadTileSamples(tc)
	}))
	if err == nil && !loaded {
		geoTIFFTileCacheHits.Inc()
	}
	return samples, err
}

// loadTileSamples reads, decompresses, and decodes the tile at tc.
func (g *GeoTIFFGrid) loadTileSamples(tc tileCoord) ([]float64, error) {
	tileIndex := tc.C + g.tilesAcross*tc.R
	tileByteCount := g.tileByteCounts[tileIndex]
	tileOffset := g.tileOffsets[tileIndex]
	compressedData := make([]byte, tileByteCount)
	switch n, err := g.file.ReadAt(compressedData, int64(tileOffset)); {
	case err != nil:
		return nil, err
	case n != int(tileByteCount):
		return nil, errShortRead
	}

	tileData := make([]byte, g.tileByteCount)
	r := lzw.NewReader(bytes.NewReader(compressedData), lzw.MSB, 8)
	for bytesRead := 0; bytesRead < g.tileByteCount; {
		n, err := r.Read(tileData[bytesRead:])
		if err != nil {
			return nil, err
		}
		bytesRead += n
	}
	return g.decodeTileData(tileData), nil
}

// decodeTileData decodes little-endian tile data into samples.
func (g *GeoTIFFGrid) decodeTileData(tileData []byte) []float64 {
	samples := make([]float64, g.tileSampleCount)
	for i := range g.tileSampleCount {
		data := tileData[i*g.bytesPerSample:]
		switch g.dtype {
		case DtypeUint8:
			samples[i] = float64(data[0])
		case DtypeUint16:
			samples[i] = float64(binary.LittleEndian.Uint16(data))
		case DtypeUint32:
			samples[i] = float64(binary.LittleEndian.Uint32(data))
		case DtypeInt16:
			samples[i] = float64(int16(binary.LittleEndian.Uint16(data)))
		case DtypeInt32:
			samples[i] = float64(int32(binary.LittleEndian.Uint32(data)))
		case DtypeFloat32:
			samples[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data)))
		case DtypeFloat64:
			samples[i] = math.Float64frombits(binary.LittleEndian.Uint64(data))
		}
	}
	return samples
}

// geoTIFFDtype maps a TIFF BitsPerSample and SampleFormat to a dtype.
func geoTIFFDtype(bitsPerSample, sampleFormat uint16) (Dtype, bool) {
	switch sampleFormat {
	case 1:
		switch bitsPerSample {
		case 8:
			return DtypeUint8, true
		case 16:
			return DtypeUint16, true
		case 32:
			return DtypeUint32, true
		}
	case 2:
		switch bitsPerSample {
		case 16:
			return DtypeInt16, true
		case 32:
			return DtypeInt32, true
		}
	case 3:
		switch bitsPerSample {
		case 32:
			return DtypeFloat32, true
		case 64:
			return DtypeFloat64, true
		}
	}
	return "", false
}

// geoTIFFTransform builds the geometry-to-grid transform from the
// ModelPixelScale and ModelTiepoint tags. The tiepoint must anchor raster
// cell (0, 0); the file's cell-to-world mapping is inverted into the
// geometry-to-grid direction used by this package.
func geoTIFFTransform(pixelScale, tiepoint []float64) (Affine, error) {
	if len(pixelScale) != 3 || pixelScale[2] != 0 ||
		len(tiepoint) != 6 || tiepoint[0] != 0 || tiepoint[1] != 0 || tiepoint[2] != 0 || tiepoint[5] != 0 {
		return Affine{}, errors.ErrUnsupported
	}
	scaleX, scaleY := pixelScale[0], pixelScale[1]
	if scaleX == 0 || scaleY == 0 {
		return Affine{}, errors.ErrUnsupported
	}
	x, y := tiepoint[3], tiepoint[4]
	return Affine{
		A: 1 / scaleX,
		C: -x / scaleX,
		E: -1 / scaleY,
		F: y / scaleY,
	}, nil
}
