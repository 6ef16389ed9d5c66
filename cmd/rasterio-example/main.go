package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	geojson "github.com/paulmach/go.geojson"

	"github.com/PhilippeGouin/rasterio"
)

func run() error {
	rows := flag.Int("rows", 10, "output rows")
	cols := flag.Int("cols", 10, "output cols")
	allTouched := flag.Bool("all-touched", false, "cover every touched cell")
	fill := flag.Float64("fill", 0, "background value")
	flag.Parse()

	if flag.NArg() != 1 {
		return errors.New("syntax: rasterio-example features.geojson")
	}
	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		return err
	}
	featureCollection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return err
	}

	pairs := make([]rasterio.GeometryValue, 0, len(featureCollection.Features))
	for _, feature := range featureCollection.Features {
		geometry, err := rasterio.GeometryFromGeoJSON(feature.Geometry)
		if err != nil {
			return err
		}
		if value, err := feature.PropertyFloat64("value"); err == nil {
			pairs = append(pairs, rasterio.Pair(geometry, value))
		} else {
			pairs = append(pairs, rasterio.GeometryValue{Geometry: geometry})
		}
	}

	grid, err := rasterio.Rasterize(pairs,
		rasterio.WithOutShape(*rows, *cols),
		rasterio.WithFill(*fill),
		rasterio.WithAllTouched(*allTouched),
	)
	if err != nil {
		return err
	}

	gridRows, gridCols := grid.Shape()
	for row := range gridRows {
		cells := make([]string, gridCols)
		for col := range gridCols {
			cells[col] = fmt.Sprint(grid.At(row, col))
		}
		fmt.Println(strings.Join(cells, " "))
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
