package ingest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farms/entities"
	"farms/pkg/farm/types"
)

// fakeFarms records reconciliations and flags every candidate whose id is
// listed in flagIDs.
type fakeFarms struct {
	seen    []types.Candidate
	at      []time.Time
	flagIDs map[string]bool
	fail    error
}

func (f *fakeFarms) Reconcile(cand types.Candidate, ingestedAt time.Time) (*entities.Farm, bool, string, error) {
	if cand.FarmID == "" {
		return nil, false, "", types.ErrMissingFarmID
	}
	if f.fail != nil {
		return nil, false, "", f.fail
	}
	f.seen = append(f.seen, cand)
	f.at = append(f.at, ingestedAt)
	if f.flagIDs[cand.FarmID] {
		return nil, true, "Geometry shift 9.77 km > 5.0 km", nil
	}
	return &entities.Farm{FarmID: cand.FarmID}, false, "", nil
}

func (f *fakeFarms) WithinRadius(lat, lon, radiusKm float64, use types.PointStrategy) ([]types.Match, error) {
	return nil, nil
}
func (f *fakeFarms) Get(farmID string) (*entities.Farm, error) { return nil, nil }
func (f *fakeFarms) List() ([]entities.Farm, error)            { return nil, nil }
func (f *fakeFarms) RebuildIndex() error                       { return nil }

var testClock = func() time.Time { return time.Date(2025, 11, 6, 19, 0, 0, 0, time.UTC) }

func TestServiceRun(t *testing.T) {
	farms := &fakeFarms{flagIDs: map[string]bool{"F2": true}}
	svc := NewService(farms, testClock)

	sum, err := svc.Run(NewCsvSource(
		"farm_id,farm_name,last_updated\nF1,Lumi,2025-11-06T19:00:00Z\nF2,Borsh,\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Ingested)
	assert.NotEmpty(t, sum.ReportID)
	require.Len(t, sum.GeometryFlags, 1)
	assert.Equal(t, "F2", sum.GeometryFlags[0].FarmID)
	assert.Contains(t, sum.GeometryFlags[0].Reason, "Geometry shift")

	// Candidate timestamps parse to UTC; every record shares one ingestion
	// instant.
	require.Len(t, farms.seen, 2)
	require.NotNil(t, farms.seen[0].LastUpdated)
	assert.True(t, farms.seen[0].LastUpdated.Equal(testClock()))
	assert.Nil(t, farms.seen[1].LastUpdated)
	assert.Equal(t, testClock(), farms.at[0])
	assert.Equal(t, testClock(), farms.at[1])
}

func TestServiceRunSkipsIdentitylessRecords(t *testing.T) {
	farms := &fakeFarms{}
	svc := NewService(farms, testClock)

	sum, err := svc.Run(NewCsvSource("farm_id,farm_name\n,NoID\nF1,Lumi\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Ingested)
	require.Len(t, sum.Errors, 1)
	assert.Contains(t, sum.Errors[0], "record 1")
	require.Len(t, farms.seen, 1)
	assert.Equal(t, "F1", farms.seen[0].FarmID)
}

func TestServiceRunPropagatesSourceError(t *testing.T) {
	svc := NewService(&fakeFarms{}, testClock)

	_, err := svc.Run(NewCsvSource("name\nLumi\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestServiceRunPropagatesPersistenceError(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewService(&fakeFarms{fail: boom}, testClock)

	_, err := svc.Run(NewCsvSource("farm_id\nF1\n"))
	assert.True(t, errors.Is(err, boom))
}
