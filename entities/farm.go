package entities

import (
	"time"

	"farms/pkg/geo"
)

// Farm is the single authoritative record per farm_id. Latitude/longitude are
// derived from geometry whenever geometry is present; they are convenience
// columns for radius queries, never independently authoritative. LastUpdated
// is UTC and never regresses.
type Farm struct {
	FarmID      string        `gorm:"primaryKey" json:"farm_id"`
	FarmName    *string       `json:"farm_name"`
	Acreage     *float64      `json:"acreage"`
	Geometry    *geo.Geometry `gorm:"serializer:json" json:"geometry"`
	Latitude    *float64      `gorm:"index" json:"latitude"`
	Longitude   *float64      `gorm:"index" json:"longitude"`
	Source      string        `json:"source"` // "csv" | "geojson" | "xml" | "xlsx" | "html"
	LastUpdated time.Time     `gorm:"index" json:"last_updated"`
}
