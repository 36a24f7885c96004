package services

import (
	"context"
	"math"
	"time"

	"github.com/GregMSThompson/sales-dashboard/internal/dataset"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

// --- Fakes ---

type fakeSessionStore struct {
	states  map[string]models.SessionState
	getErr  error
	saveErr error
	saves   int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{states: make(map[string]models.SessionState)}
}

func (f *fakeSessionStore) Get(_ context.Context, sessionID string) (*models.SessionState, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.states[sessionID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSessionStore) Save(_ context.Context, state *models.SessionState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.states[state.SessionID] = *state
	return nil
}

type fakeCache struct {
	raw      map[string]*models.Dataset
	filtered map[string]*models.Dataset
}

func newFakeCache() *fakeCache {
	return &fakeCache{raw: map[string]*models.Dataset{}, filtered: map[string]*models.Dataset{}}
}

func (f *fakeCache) Dataset(id string) *models.Dataset  { return f.raw[id] }
func (f *fakeCache) Filtered(id string) *models.Dataset { return f.filtered[id] }

func (f *fakeCache) SetDataset(id string, ds *models.Dataset) {
	f.raw[id] = ds
	delete(f.filtered, id)
}

func (f *fakeCache) SetFiltered(id string, ds *models.Dataset) { f.filtered[id] = ds }

type fixedSamples struct {
	ds *models.Dataset
}

func (f fixedSamples) Sample() *models.Dataset { return f.ds }

// --- Helpers ---

var testNow = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

func sampleDataset() *models.Dataset {
	return dataset.GenerateSample(testNow, dataset.DefaultSampleDays, dataset.DefaultSampleSeed)
}

func smallDataset(sourceID string) *models.Dataset {
	return &models.Dataset{
		SourceID: sourceID,
		Name:     sourceID,
		Records: []models.Record{
			{Date: "2025-01-01", Category: "Electronics", Region: "North", Sales: 100, Units: 2, Customers: 1},
			{Date: "2025-01-02", Category: "Electronics", Region: "North", Sales: 300, Units: 4, Customers: 2},
			{Date: "2025-01-02", Category: "Sports", Region: "South", Sales: 50, Units: 1, Customers: 1},
			{Date: "2025-01-03", Category: "Sports", Region: "South", Sales: 150, Units: 5, Customers: 3},
		},
	}
}

func strs(s ...string) *[]string { return &s }

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
