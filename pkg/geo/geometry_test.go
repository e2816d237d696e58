package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeGeometry(t *testing.T, raw string) *Geometry {
	t.Helper()
	var g Geometry
	require.NoError(t, json.Unmarshal([]byte(raw), &g))
	return &g
}

func TestRepresentativePointPoint(t *testing.T) {
	g := decodeGeometry(t, `{"type":"Point","coordinates":[19.817,41.329]}`)

	lat, lon, ok := RepresentativePoint(g)
	require.True(t, ok)
	assert.InDelta(t, 41.329, lat, 1e-9)
	assert.InDelta(t, 19.817, lon, 1e-9)
}

func TestRepresentativePointPointWithAltitude(t *testing.T) {
	g := decodeGeometry(t, `{"type":"Point","coordinates":[19.817,41.329,120.5]}`)

	lat, lon, ok := RepresentativePoint(g)
	require.True(t, ok)
	assert.InDelta(t, 41.329, lat, 1e-9)
	assert.InDelta(t, 19.817, lon, 1e-9)
}

func TestRepresentativePointPolygonCentroid(t *testing.T) {
	g := decodeGeometry(t, `{
		"type": "Polygon",
		"coordinates": [[[10,40],[12,40],[12,42],[10,42]]]
	}`)

	lat, lon, ok := RepresentativePoint(g)
	require.True(t, ok)
	assert.InDelta(t, 41.0, lat, 1e-9)
	assert.InDelta(t, 11.0, lon, 1e-9)
}

func TestRepresentativePointMultiPolygon(t *testing.T) {
	g := decodeGeometry(t, `{
		"type": "MultiPolygon",
		"coordinates": [
			[[[0,0],[2,0]]],
			[[[2,4],[0,4]]]
		]
	}`)

	lat, lon, ok := RepresentativePoint(g)
	require.True(t, ok)
	assert.InDelta(t, 2.0, lat, 1e-9)
	assert.InDelta(t, 1.0, lon, 1e-9)
}

func TestRepresentativePointGeometryCollection(t *testing.T) {
	g := decodeGeometry(t, `{
		"type": "GeometryCollection",
		"geometries": [
			{"type":"Point","coordinates":[10,20]},
			{"type":"LineString","coordinates":[[12,22],[14,24]]}
		]
	}`)

	lat, lon, ok := RepresentativePoint(g)
	require.True(t, ok)
	assert.InDelta(t, 22.0, lat, 1e-9)
	assert.InDelta(t, 12.0, lon, 1e-9)
}

func TestRepresentativePointSkipsMalformedLeaves(t *testing.T) {
	g := decodeGeometry(t, `{
		"type": "LineString",
		"coordinates": [[10,40],["x","y"],[12],[12,42,7,9],[14,44]]
	}`)

	// Only [10,40] and [14,44] are valid 2-element numeric pairs; [12,42,7,9]
	// is not a pair and its members are bare numbers, so it contributes
	// nothing either.
	lat, lon, ok := RepresentativePoint(g)
	require.True(t, ok)
	assert.InDelta(t, 42.0, lat, 1e-9)
	assert.InDelta(t, 12.0, lon, 1e-9)
}

func TestRepresentativePointAbsent(t *testing.T) {
	for name, g := range map[string]*Geometry{
		"nil":              nil,
		"empty":            {},
		"no coordinates":   {Type: TypePolygon},
		"garbage leaves":   decodeGeometry(t, `{"type":"LineString","coordinates":[["a","b"]]}`),
		"point non-number": decodeGeometry(t, `{"type":"Point","coordinates":["a","b"]}`),
		"empty collection": {Type: TypeGeometryCollection},
	} {
		_, _, ok := RepresentativePoint(g)
		assert.False(t, ok, name)
	}
}

func TestGeometryRoundTrip(t *testing.T) {
	g := decodeGeometry(t, `{"type":"Point","coordinates":[19.817,41.329]}`)

	raw, err := json.Marshal(g)
	require.NoError(t, err)

	back := decodeGeometry(t, string(raw))
	lat, lon, ok := RepresentativePoint(back)
	require.True(t, ok)
	assert.InDelta(t, 41.329, lat, 1e-9)
	assert.InDelta(t, 19.817, lon, 1e-9)
}
