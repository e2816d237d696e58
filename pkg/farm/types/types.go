package types

import (
	"errors"
	"time"

	"farms/entities"
	"farms/pkg/geo"
)

// DefaultGeomShiftKm separates plausible GPS/survey noise from likely
// misidentification. Shifts beyond it are flagged instead of applied.
const DefaultGeomShiftKm = 5.0

// ErrMissingFarmID is the one fatal per-record condition: a candidate without
// an identity cannot be reconciled.
var ErrMissingFarmID = errors.New("farm_id is required")

// Candidate is one ingested record before reconciliation. Nil means "no
// opinion" and never overwrites a persisted value.
type Candidate struct {
	FarmID      string
	FarmName    *string
	Acreage     *float64
	Geometry    *geo.Geometry
	Latitude    *float64
	Longitude   *float64
	Source      string
	LastUpdated *time.Time
}

// Flag reports a rejected-but-recorded geometry shift.
type Flag struct {
	FarmID string `json:"farm_id"`
	Reason string `json:"reason"`
}

// Match pairs a farm with its distance from a query center.
type Match struct {
	Farm       *entities.Farm `json:"farm"`
	DistanceKm float64        `json:"distance_km"`
}

// PointStrategy selects how a farm's representative point is derived for
// radius queries.
type PointStrategy string

const (
	// StrategyAuto prefers the stored lat/lon and falls back to the geometry
	// centroid.
	StrategyAuto PointStrategy = "auto"
	// StrategyLatLon uses only the stored lat/lon columns.
	StrategyLatLon PointStrategy = "latlon"
	// StrategyGeometry always rederives the point from geometry.
	StrategyGeometry PointStrategy = "geometry"
)
