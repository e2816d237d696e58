package serviceImp

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"farms/entities"
	"farms/pkg/farm/repository"
	"farms/pkg/farm/service"
	"farms/pkg/farm/types"
	"farms/pkg/geo"
)

// Clock supplies the ingestion instant when neither the candidate nor the
// caller provides one. Injected so tests are deterministic.
type Clock func() time.Time

type farmSvc struct {
	repo      repository.FarmRepository
	index     *geo.FarmIndex
	threshold float64
	clock     Clock
	locks     sync.Map // farm_id -> *sync.Mutex
}

// New builds the reconciliation engine. index may be nil (radius queries then
// always scan); thresholdKm <= 0 selects the default; clock nil selects UTC
// wall time.
func New(repo repository.FarmRepository, index *geo.FarmIndex, thresholdKm float64, clock Clock) service.FarmService {
	if thresholdKm <= 0 {
		thresholdKm = types.DefaultGeomShiftKm
	}
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &farmSvc{repo: repo, index: index, threshold: thresholdKm, clock: clock}
}

// lockFor serializes the read-modify-write per farm_id. Two reconciliations
// of the same id must not interleave fetch and commit, or one merge decision
// is computed against stale state; distinct ids proceed concurrently.
func (s *farmSvc) lockFor(id string) *sync.Mutex {
	m, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return m.(*sync.Mutex)
}

func (s *farmSvc) Reconcile(cand types.Candidate, ingestedAt time.Time) (*entities.Farm, bool, string, error) {
	if strings.TrimSpace(cand.FarmID) == "" {
		return nil, false, "", types.ErrMissingFarmID
	}
	if ingestedAt.IsZero() {
		ingestedAt = s.clock()
	}
	ingestedAt = ingestedAt.UTC()

	mu := s.lockFor(cand.FarmID)
	mu.Lock()
	defer mu.Unlock()

	existing, err := s.repo.FindByID(cand.FarmID)
	if err != nil {
		return nil, false, "", err
	}
	if existing == nil {
		f, err := s.insert(cand, ingestedAt)
		return f, false, "", err
	}
	return s.merge(existing, cand)
}

// insert creates the record on first sighting. Inserts are never flagged.
func (s *farmSvc) insert(cand types.Candidate, ingestedAt time.Time) (*entities.Farm, error) {
	ts := ingestedAt
	if cand.LastUpdated != nil {
		ts = cand.LastUpdated.UTC()
	}
	lat, lon := candidatePoint(cand)
	f := &entities.Farm{
		FarmID:      cand.FarmID,
		FarmName:    cand.FarmName,
		Acreage:     cand.Acreage,
		Geometry:    cand.Geometry,
		Latitude:    lat,
		Longitude:   lon,
		Source:      cand.Source,
		LastUpdated: ts,
	}
	if err := s.repo.Save(f); err != nil {
		return nil, err
	}
	s.reindex(f)
	return f, nil
}

// merge applies the update policy: recency-gated scalars, the geometry-shift
// threshold, coordinate sync from geometry, then timestamp/source finalize.
// All recency sub-decisions share one comparison; a candidate without its own
// timestamp counts as newer.
func (s *farmSvc) merge(rec *entities.Farm, cand types.Candidate) (*entities.Farm, bool, string, error) {
	incomingNewer := cand.LastUpdated == nil || !cand.LastUpdated.UTC().Before(rec.LastUpdated)

	if incomingNewer {
		if cand.FarmName != nil && *cand.FarmName != "" {
			rec.FarmName = cand.FarmName
		}
		if cand.Acreage != nil {
			rec.Acreage = cand.Acreage
		}
	}

	flagged := false
	reason := ""
	if cand.Geometry != nil && incomingNewer {
		// Stale geometry was already rejected above, silently: discarded,
		// not flagged.
		oldLat, oldLon, oldOK := geo.RepresentativePoint(rec.Geometry)
		newLat, newLon, newOK := geo.RepresentativePoint(cand.Geometry)
		switch {
		case oldOK && newOK:
			d := geo.HaversineKm(oldLat, oldLon, newLat, newLon)
			if d > s.threshold {
				flagged = true
				reason = fmt.Sprintf("Geometry shift %.2f km > %.1f km", d, s.threshold)
			} else {
				rec.Geometry = cand.Geometry
			}
		default:
			// No basis to compare (no prior geometry, or either side is not
			// reducible): accept unconditionally.
			rec.Geometry = cand.Geometry
		}
	}

	// Coordinate sync. Flagged updates leave coordinates untouched; geometry,
	// when present, is always authoritative over explicit lat/lon.
	if !flagged {
		if rec.Geometry != nil {
			if lat, lon, ok := geo.RepresentativePoint(rec.Geometry); ok {
				rec.Latitude = geo.Round4Ptr(&lat)
				rec.Longitude = geo.Round4Ptr(&lon)
			}
		} else if incomingNewer {
			if geo.ValidNumber(cand.Latitude) {
				rec.Latitude = geo.Round4Ptr(cand.Latitude)
			}
			if geo.ValidNumber(cand.Longitude) {
				rec.Longitude = geo.Round4Ptr(cand.Longitude)
			}
		}
	}

	// Timestamp is monotonic; the source tag is not recency-gated.
	if cand.LastUpdated != nil && !cand.LastUpdated.UTC().Before(rec.LastUpdated) {
		rec.LastUpdated = cand.LastUpdated.UTC()
	}
	if cand.Source != "" {
		rec.Source = cand.Source
	}

	if err := s.repo.Save(rec); err != nil {
		return nil, false, "", err
	}
	s.reindex(rec)
	return rec, flagged, reason, nil
}

// candidatePoint picks coordinates for a fresh record: geometry wins when
// present, explicit lat/lon is the fallback when both values are given.
func candidatePoint(cand types.Candidate) (*float64, *float64) {
	if cand.Geometry != nil {
		if lat, lon, ok := geo.RepresentativePoint(cand.Geometry); ok {
			return geo.Round4Ptr(&lat), geo.Round4Ptr(&lon)
		}
		return nil, nil
	}
	if geo.ValidNumber(cand.Latitude) && geo.ValidNumber(cand.Longitude) {
		return geo.Round4Ptr(cand.Latitude), geo.Round4Ptr(cand.Longitude)
	}
	return nil, nil
}

func (s *farmSvc) WithinRadius(lat, lon, radiusKm float64, use types.PointStrategy) ([]types.Match, error) {
	if use == "" {
		use = types.StrategyAuto
	}
	farms, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}

	// Bounding-box pre-filter; only valid for the strategy the index stores.
	var keep map[string]bool
	if s.index != nil && use == types.StrategyAuto {
		keep = make(map[string]bool)
		for _, p := range s.index.Within(lat, lon, radiusKm) {
			keep[p.ID] = true
		}
	}

	matches := make([]types.Match, 0)
	for i := range farms {
		f := &farms[i]
		if keep != nil && !keep[f.FarmID] {
			continue
		}
		plat, plon, ok := pointFor(f, use)
		if !ok {
			continue
		}
		d := geo.HaversineKm(lat, lon, plat, plon)
		if d <= radiusKm {
			matches = append(matches, types.Match{Farm: f, DistanceKm: d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})
	return matches, nil
}

func (s *farmSvc) Get(farmID string) (*entities.Farm, error) { return s.repo.FindByID(farmID) }

func (s *farmSvc) List() ([]entities.Farm, error) { return s.repo.FindAll() }

func (s *farmSvc) RebuildIndex() error {
	if s.index == nil {
		return nil
	}
	farms, err := s.repo.FindAll()
	if err != nil {
		return err
	}
	for i := range farms {
		s.reindex(&farms[i])
	}
	return nil
}

func (s *farmSvc) reindex(f *entities.Farm) {
	if s.index == nil {
		return
	}
	if lat, lon, ok := autoPoint(f); ok {
		s.index.Upsert(f.FarmID, lat, lon)
	}
}

// autoPoint is the auto strategy: stored lat/lon first, geometry centroid as
// fallback.
func autoPoint(f *entities.Farm) (float64, float64, bool) {
	if geo.ValidNumber(f.Latitude) && geo.ValidNumber(f.Longitude) {
		return *f.Latitude, *f.Longitude, true
	}
	return geo.RepresentativePoint(f.Geometry)
}

func pointFor(f *entities.Farm, use types.PointStrategy) (float64, float64, bool) {
	switch use {
	case types.StrategyLatLon:
		if geo.ValidNumber(f.Latitude) && geo.ValidNumber(f.Longitude) {
			return *f.Latitude, *f.Longitude, true
		}
		return 0, 0, false
	case types.StrategyGeometry:
		return geo.RepresentativePoint(f.Geometry)
	default:
		return autoPoint(f)
	}
}
