package ingest

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"farms/pkg/geo"
)

// ErrValidation wraps every payload problem a producer can surface; the HTTP
// layer maps it to 422.
var ErrValidation = errors.New("invalid payload")

// Record is the normalized output of a producer, one per ingested item.
// Pointer fields carry "no opinion" as nil; LastUpdated stays raw text and is
// parsed leniently downstream.
type Record struct {
	FarmID      string
	FarmName    *string
	Acreage     *float64
	Geometry    *geo.Geometry
	Latitude    *float64
	Longitude   *float64
	LastUpdated string
	Source      string
}

// Source yields a finite sequence of normalized records. Producers fail with
// an ErrValidation-wrapped error when the payload cannot carry farm
// identities at all (missing column, unparseable body); per-record problems
// degrade to absent fields instead.
type Source interface {
	Records() ([]Record, error)
}

// headerIndex maps normalized column names to positions. Normalization strips
// BOM, case, spaces, dashes and underscores, so "Farm ID" and "farm_id" both
// land on farmid.
func headerIndex(head []string) map[string]int {
	idx := make(map[string]int, len(head))
	for i, h := range head {
		idx[normKey(h)] = i
	}
	return idx
}

func normKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// recordFromRow maps one tabular row (CSV, XLSX sheet, HTML table) onto a
// Record. Missing and malformed cells normalize to absent.
func recordFromRow(col map[string]int, row []string, source string) Record {
	get := func(name string) string {
		i, ok := col[normKey(name)]
		if !ok || i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return Record{
		FarmID:      get("farm_id"),
		FarmName:    optString(get("farm_name")),
		Acreage:     geo.ParseFloat(get("acreage")),
		Geometry:    parseGeometryJSON(get("geometry")),
		Latitude:    geo.ParseFloat(get("latitude")),
		Longitude:   geo.ParseFloat(get("longitude")),
		LastUpdated: get("last_updated"),
		Source:      source,
	}
}

// parseGeometryJSON decodes an embedded GeoJSON string, as carried in the
// geometry column of tabular feeds. Bad geometry strings are ignored.
func parseGeometryJSON(s string) *geo.Geometry {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var g geo.Geometry
	if err := json.Unmarshal([]byte(s), &g); err != nil {
		return nil
	}
	if g.Empty() {
		return nil
	}
	return &g
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// anyToFloat normalizes the untyped acreage values of JSON feeds: numbers
// pass through, numeric strings parse, everything else is absent.
func anyToFloat(v any) *float64 {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return &x
	case string:
		return geo.ParseFloat(x)
	case json.Number:
		return geo.ParseFloat(x.String())
	}
	return nil
}

// anyToString renders a property value the way feeds write identities:
// strings as-is, integral numbers without a decimal point.
func anyToString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case nil:
		return ""
	}
	return ""
}
