package geo

// GeoJSON geometry types understood by the reducer.
const (
	TypePoint              = "Point"
	TypeLineString         = "LineString"
	TypePolygon            = "Polygon"
	TypeMultiPoint         = "MultiPoint"
	TypeMultiLineString    = "MultiLineString"
	TypeMultiPolygon       = "MultiPolygon"
	TypeGeometryCollection = "GeometryCollection"
)

// Geometry is a GeoJSON geometry. Coordinates keeps the decoded JSON nesting
// as-is ([]any of numbers or deeper slices) so that malformed leaves survive
// decoding and get skipped during reduction instead of failing the record.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates any        `json:"coordinates,omitempty"`
	Geometries  []Geometry `json:"geometries,omitempty"`
}

// Empty reports whether the geometry carries no payload at all.
func (g *Geometry) Empty() bool {
	return g == nil || (g.Type == "" && g.Coordinates == nil && len(g.Geometries) == 0)
}

// RepresentativePoint reduces a geometry to a single (lat, lon): a Point maps
// to itself, anything else to the centroid of its valid vertices. ok is false
// when no coordinate pair can be extracted.
func RepresentativePoint(g *Geometry) (lat, lon float64, ok bool) {
	if g.Empty() {
		return 0, 0, false
	}
	if g.Type == TypePoint {
		if lon, lat, ok := headPair(g.Coordinates); ok {
			return lat, lon, true
		}
	}
	var pts [][2]float64
	collectPairs(g, &pts)
	if len(pts) == 0 {
		return 0, 0, false
	}
	var sumLat, sumLon float64
	for _, p := range pts {
		sumLon += p[0]
		sumLat += p[1]
	}
	n := float64(len(pts))
	return sumLat / n, sumLon / n, true
}

// collectPairs gathers every valid vertex reachable from g, recursing through
// GeometryCollection members.
func collectPairs(g *Geometry, out *[][2]float64) {
	if g == nil {
		return
	}
	switch g.Type {
	case TypeGeometryCollection:
		for i := range g.Geometries {
			collectPairs(&g.Geometries[i], out)
		}
	default:
		// Point, line, polygon and multi-* all reduce to their nested
		// coordinate arrays; unknown tags are treated the same way.
		flattenCoords(g.Coordinates, out)
		for i := range g.Geometries {
			collectPairs(&g.Geometries[i], out)
		}
	}
}

// flattenCoords walks arbitrarily nested coordinate arrays and appends every
// exact [lon, lat] numeric pair. Anything else is skipped, not an error.
func flattenCoords(v any, out *[][2]float64) {
	s, ok := v.([]any)
	if !ok {
		return
	}
	if len(s) == 2 {
		if lon, okLon := asNumber(s[0]); okLon {
			if lat, okLat := asNumber(s[1]); okLat {
				*out = append(*out, [2]float64{lon, lat})
				return
			}
		}
	}
	for _, c := range s {
		flattenCoords(c, out)
	}
}

// headPair reads the first two positions of a Point's coordinate array,
// tolerating trailing members such as altitude.
func headPair(v any) (lon, lat float64, ok bool) {
	s, isSlice := v.([]any)
	if !isSlice || len(s) < 2 {
		return 0, 0, false
	}
	lon, okLon := asNumber(s[0])
	lat, okLat := asNumber(s[1])
	if !okLon || !okLat {
		return 0, 0, false
	}
	return lon, lat, true
}

func asNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
