package ingest

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"farms/pkg/farm/service"
	"farms/pkg/farm/types"
)

// Summary is the outcome of one ingestion run.
type Summary struct {
	ReportID      string       `json:"report_id"`
	Ingested      int          `json:"ingested"`
	GeometryFlags []types.Flag `json:"geometry_flags"`
	Errors        []string     `json:"errors,omitempty"`
}

// Service drives one producer's records through the reconciliation engine.
type Service struct {
	farms service.FarmService
	clock func() time.Time
}

// NewService wires the orchestrator; a nil clock selects UTC wall time.
func NewService(farms service.FarmService, clock func() time.Time) *Service {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Service{farms: farms, clock: clock}
}

// Run reconciles every record of the source under a single ingestion
// timestamp. A record without farm_id is reported and skipped; the rest of
// the batch still lands. Persistence errors abort the run (already committed
// records stay committed).
func (s *Service) Run(src Source) (*Summary, error) {
	recs, err := src.Records()
	if err != nil {
		return nil, err
	}

	ingestedAt := s.clock()
	sum := &Summary{ReportID: uuid.NewString(), GeometryFlags: []types.Flag{}}
	for i, r := range recs {
		cand := types.Candidate{
			FarmID:      r.FarmID,
			FarmName:    r.FarmName,
			Acreage:     r.Acreage,
			Geometry:    r.Geometry,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			Source:      r.Source,
			LastUpdated: ParseTime(r.LastUpdated),
		}
		_, flagged, reason, err := s.farms.Reconcile(cand, ingestedAt)
		if err != nil {
			if errors.Is(err, types.ErrMissingFarmID) {
				sum.Errors = append(sum.Errors, fmt.Sprintf("record %d: %v", i+1, err))
				continue
			}
			return nil, err
		}
		if flagged {
			sum.GeometryFlags = append(sum.GeometryFlags, types.Flag{FarmID: r.FarmID, Reason: reason})
		}
		sum.Ingested++
	}
	return sum, nil
}
