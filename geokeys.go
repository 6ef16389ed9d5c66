package rasterio

import "errors"

var errParseGeoKeys = errors.New("malformed GeoKey directory")

// GeoKeys used by the GeoTIFF reader. Codes follow the GeoTIFF
// specification.
const (
	geoKeyGTModelType  uint16 = 1024
	geoKeyCitation     uint16 = 1026
	geoKeyGeodeticCRS  uint16 = 2048
	geoKeyProjectedCRS uint16 = 3072
)

// userDefinedCRS marks a CRS described by parameters rather than an EPSG
// code.
const userDefinedCRS = 32767

// geoKeys holds the parsed GeoKey directory of a GeoTIFF.
type geoKeys struct {
	params       map[uint16]int
	doubleParams map[uint16]float64
	asciiParams  map[uint16]string
}

// parseGeoKeys parses a GeoKeyDirectoryTag together with its double and
// ASCII parameter tags. An empty directory parses to empty key sets.
func parseGeoKeys(directory []uint16, doubleParams []float64, asciiParams string) (*geoKeys, error) {
	keys := &geoKeys{
		params:       make(map[uint16]int),
		doubleParams: make(map[uint16]float64),
		asciiParams:  make(map[uint16]string),
	}
	if len(directory) == 0 {
		return keys, nil
	}
	if len(directory) < 4 || directory[0] != 1 {
		return nil, errParseGeoKeys
	}
	numberOfKeys := int(directory[3])
	if len(directory) != 4+4*numberOfKeys {
		return nil, errParseGeoKeys
	}

	for i := range numberOfKeys {
		entry := directory[4+4*i : 4+4*(i+1)]
		key := entry[0]
		location := entry[1]
		count := int(entry[2])
		offset := int(entry[3])
		switch location {
		case 0:
			if count != 1 {
				return nil, errParseGeoKeys
			}
			keys.params[key] = offset
		case 34736: // GeoDoubleParamsTag
			if count != 1 || len(doubleParams) <= offset {
				return nil, errParseGeoKeys
			}
			keys.doubleParams[key] = doubleParams[offset]
		case 34737: // GeoASCIIParamsTag
			if len(asciiParams) < offset+count {
				return nil, errParseGeoKeys
			}
			keys.asciiParams[key] = asciiParams[offset : offset+count]
		default:
			return nil, errors.ErrUnsupported
		}
	}
	return keys, nil
}

// srid returns the EPSG code of the raster's CRS, preferring a projected CRS
// over a geodetic one. It returns 0 when the CRS is user-defined or absent.
func (k *geoKeys) srid() int {
	if code, ok := k.params[geoKeyProjectedCRS]; ok && code != userDefinedCRS {
		return code
	}
	if code, ok := k.params[geoKeyGeodeticCRS]; ok && code != userDefinedCRS {
		return code
	}
	return 0
}

// citation returns the raster's citation string, if any.
func (k *geoKeys) citation() string {
	return k.asciiParams[geoKeyCitation]
}
