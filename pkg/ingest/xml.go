package ingest

import (
	"encoding/xml"
	"fmt"

	"farms/pkg/geo"
)

type xmlFarm struct {
	FarmID      string `xml:"farm_id"`
	FarmName    string `xml:"farm_name"`
	Acreage     string `xml:"acreage"`
	Latitude    string `xml:"latitude"`
	Longitude   string `xml:"longitude"`
	Geometry    string `xml:"geometry"` // embedded GeoJSON string
	LastUpdated string `xml:"last_updated"`
}

type xmlFeed struct {
	XMLName xml.Name  `xml:"farms"`
	Farms   []xmlFarm `xml:"farm"`
}

// XMLSource parses a <farms><farm>…</farm></farms> feed; each child element
// mirrors one tabular column.
type XMLSource struct{ content []byte }

func NewXMLSource(content []byte) *XMLSource { return &XMLSource{content} }

func (s *XMLSource) Records() ([]Record, error) {
	var feed xmlFeed
	if err := xml.Unmarshal(s.content, &feed); err != nil {
		return nil, fmt.Errorf("%w: invalid xml: %v", ErrValidation, err)
	}

	out := make([]Record, 0, len(feed.Farms))
	for _, f := range feed.Farms {
		out = append(out, Record{
			FarmID:      f.FarmID,
			FarmName:    optString(f.FarmName),
			Acreage:     geo.ParseFloat(f.Acreage),
			Geometry:    parseGeometryJSON(f.Geometry),
			Latitude:    geo.ParseFloat(f.Latitude),
			Longitude:   geo.ParseFloat(f.Longitude),
			LastUpdated: f.LastUpdated,
			Source:      "xml",
		})
	}
	return out, nil
}
