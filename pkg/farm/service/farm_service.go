package service

import (
	"time"

	"farms/entities"
	"farms/pkg/farm/types"
)

// FarmService is the reconciliation engine and the radius query.
type FarmService interface {
	// Reconcile merges one candidate into the authoritative record for its
	// farm_id, creating the record on first sighting. ingestedAt is the batch
	// ingestion instant, used when the candidate carries no own timestamp; a
	// zero value falls back to the service clock. Returns the committed
	// record, whether the update was flagged, and the flag reason.
	Reconcile(cand types.Candidate, ingestedAt time.Time) (*entities.Farm, bool, string, error)

	// WithinRadius returns the farms whose representative point lies within
	// radiusKm (inclusive) of the center, nearest first, ties in stable
	// storage order. Farms without a derivable point are skipped.
	WithinRadius(lat, lon, radiusKm float64, use types.PointStrategy) ([]types.Match, error)

	// Get returns (nil, nil) when the farm does not exist.
	Get(farmID string) (*entities.Farm, error)
	List() ([]entities.Farm, error)

	// RebuildIndex reloads every stored farm into the radius index, so rows
	// persisted by earlier runs are queryable. Called once at startup.
	RebuildIndex() error
}
