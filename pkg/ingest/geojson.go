package ingest

import (
	"encoding/json"
	"fmt"

	"farms/pkg/geo"
)

// Feature is one GeoJSON feature; farm fields live in its properties.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   *geo.Geometry  `json:"geometry"`
}

// FeatureCollection is the standard GeoJSON envelope.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// GeoJSONSource parses a request body holding a single Feature or a
// FeatureCollection. Every feature must name a farm_id property.
type GeoJSONSource struct{ body []byte }

func NewGeoJSONSource(body []byte) *GeoJSONSource { return &GeoJSONSource{body} }

func (s *GeoJSONSource) Records() ([]Record, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(s.body, &probe); err != nil {
		return nil, fmt.Errorf("%w: body is not valid JSON: %v", ErrValidation, err)
	}

	var features []Feature
	switch probe.Type {
	case "FeatureCollection":
		var fc FeatureCollection
		if err := json.Unmarshal(s.body, &fc); err != nil {
			return nil, fmt.Errorf("%w: bad FeatureCollection: %v", ErrValidation, err)
		}
		features = fc.Features
	case "Feature":
		var f Feature
		if err := json.Unmarshal(s.body, &f); err != nil {
			return nil, fmt.Errorf("%w: bad Feature: %v", ErrValidation, err)
		}
		features = []Feature{f}
	default:
		return nil, fmt.Errorf("%w: body must be a GeoJSON Feature or FeatureCollection", ErrValidation)
	}

	out := make([]Record, 0, len(features))
	for _, ft := range features {
		props := ft.Properties
		id, ok := props["farm_id"]
		if !ok {
			return nil, fmt.Errorf("%w: feature properties must include farm_id", ErrValidation)
		}
		g := ft.Geometry
		if g.Empty() {
			g = nil
		}
		out = append(out, Record{
			FarmID:      anyToString(id),
			FarmName:    optString(anyToString(props["farm_name"])),
			Acreage:     anyToFloat(props["acreage"]),
			Geometry:    g,
			LastUpdated: anyToString(props["last_updated"]),
			Source:      "geojson",
		})
	}
	return out, nil
}
