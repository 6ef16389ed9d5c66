package rasterio

import (
	"errors"
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// GeometryFromGeoJSON converts a structural GeoJSON geometry into the closed
// variant used by this package. GeometryCollection is not supported.
func GeometryFromGeoJSON(g *geojson.Geometry) (Geometry, error) {
	switch g.Type {
	case geojson.GeometryPoint:
		return pointFromCoordinate(g.Point)
	case geojson.GeometryMultiPoint:
		points := make(MultiPoint, len(g.MultiPoint))
		for i, coordinate := range g.MultiPoint {
			p, err := pointFromCoordinate(coordinate)
			if err != nil {
				return nil, err
			}
			points[i] = p
		}
		return points, nil
	case geojson.GeometryLineString:
		return lineStringFromCoordinates(g.LineString)
	case geojson.GeometryMultiLineString:
		lines := make(MultiLineString, len(g.MultiLineString))
		for i, coordinates := range g.MultiLineString {
			line, err := lineStringFromCoordinates(coordinates)
			if err != nil {
				return nil, err
			}
			lines[i] = line
		}
		return lines, nil
	case geojson.GeometryPolygon:
		return polygonFromCoordinates(g.Polygon)
	case geojson.GeometryMultiPolygon:
		polygons := make(MultiPolygon, len(g.MultiPolygon))
		for i, coordinates := range g.MultiPolygon {
			polygon, err := polygonFromCoordinates(coordinates)
			if err != nil {
				return nil, err
			}
			polygons[i] = polygon
		}
		return polygons, nil
	default:
		return nil, fmt.Errorf("%s: %w", g.Type, errors.ErrUnsupported)
	}
}

// GeometryToGeoJSON converts a geometry to its structural GeoJSON form.
func GeometryToGeoJSON(g Geometry) *geojson.Geometry {
	switch g := g.(type) {
	case Point:
		return geojson.NewPointGeometry(coordinateFromPoint(g))
	case MultiPoint:
		coordinates := make([][]float64, len(g))
		for i, p := range g {
			coordinates[i] = coordinateFromPoint(p)
		}
		return geojson.NewMultiPointGeometry(coordinates...)
	case LineString:
		return geojson.NewLineStringGeometry(coordinatesFromPoints(g))
	case MultiLineString:
		lines := make([][][]float64, len(g))
		for i, line := range g {
			lines[i] = coordinatesFromPoints(line)
		}
		return geojson.NewMultiLineStringGeometry(lines...)
	case Polygon:
		return geojson.NewPolygonGeometry(coordinatesFromPolygon(g))
	case MultiPolygon:
		polygons := make([][][][]float64, len(g))
		for i, polygon := range g {
			polygons[i] = coordinatesFromPolygon(polygon)
		}
		return geojson.NewMultiPolygonGeometry(polygons...)
	default:
		return nil
	}
}

func pointFromCoordinate(coordinate []float64) (Point, error) {
	if len(coordinate) < 2 {
		return Point{}, fmt.Errorf("coordinate %v: %w", coordinate, errors.ErrUnsupported)
	}
	return Point{X: coordinate[0], Y: coordinate[1]}, nil
}

func lineStringFromCoordinates(coordinates [][]float64) (LineString, error) {
	line := make(LineString, len(coordinates))
	for i, coordinate := range coordinates {
		p, err := pointFromCoordinate(coordinate)
		if err != nil {
			return nil, err
		}
		line[i] = p
	}
	return line, nil
}

func polygonFromCoordinates(coordinates [][][]float64) (Polygon, error) {
	var polygon Polygon
	for i, ringCoordinates := range coordinates {
		ring := make(Ring, len(ringCoordinates))
		for j, coordinate := range ringCoordinates {
			p, err := pointFromCoordinate(coordinate)
			if err != nil {
				return Polygon{}, err
			}
			ring[j] = p
		}
		if i == 0 {
			polygon.Exterior = ring
		} else {
			polygon.Holes = append(polygon.Holes, ring)
		}
	}
	return polygon, nil
}

func coordinateFromPoint(p Point) []float64 {
	return []float64{p.X, p.Y}
}

func coordinatesFromPoints(points []Point) [][]float64 {
	coordinates := make([][]float64, len(points))
	for i, p := range points {
		coordinates[i] = coordinateFromPoint(p)
	}
	return coordinates
}

func coordinatesFromPolygon(polygon Polygon) [][][]float64 {
	coordinates := make([][][]float64, 0, 1+len(polygon.Holes))
	coordinates = append(coordinates, coordinatesFromPoints(polygon.Exterior))
	for _, hole := range polygon.Holes {
		coordinates = append(coordinates, coordinatesFromPoints(hole))
	}
	return coordinates
}
