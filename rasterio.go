// Package rasterio converts vector geometries into grids of values under an
// affine georeferencing transform, and groups grid cells back into polygons
// by like value. The engine is stateless between calls; independent calls on
// disjoint grids are safe to run concurrently.
package rasterio
