package repository

import "farms/entities"

// FarmRepository is the persistence contract of the reconciliation engine.
// Save must be a single atomic upsert; read-modify-write serialization per
// farm_id is handled above this layer.
type FarmRepository interface {
	// FindByID returns (nil, nil) when no record exists for id.
	FindByID(id string) (*entities.Farm, error)
	FindAll() ([]entities.Farm, error)
	Save(f *entities.Farm) error
}
