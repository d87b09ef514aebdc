package aggregator_test

import (
	"context"
	"sync"
	"time"

	"github.com/openmeteo/enhydris-synoptic/internal/models"
	"github.com/openmeteo/enhydris-synoptic/internal/warning"
)

// fakeStore is an in-memory time-series store. Samples must be appended in
// chronological order.
type fakeStore struct {
	samples map[int64][]models.Sample
	errs    map[int64]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		samples: make(map[int64][]models.Sample),
		errs:    make(map[int64]error),
	}
}

func (f *fakeStore) add(timeseriesID int64, ts string, value float64) {
	parsed, err := time.Parse("2006-01-02 15:04", ts)
	if err != nil {
		panic(err)
	}
	f.samples[timeseriesID] = append(f.samples[timeseriesID], models.Sample{Timestamp: parsed, Value: value})
}

func (f *fakeStore) GetRange(_ context.Context, timeseriesID int64, start, end time.Time) ([]models.Sample, error) {
	if err := f.errs[timeseriesID]; err != nil {
		return nil, err
	}
	var out []models.Sample
	for _, s := range f.samples[timeseriesID] {
		if !s.Timestamp.Before(start) && !s.Timestamp.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) LatestTimestamp(_ context.Context, timeseriesID int64) (*time.Time, error) {
	if err := f.errs[timeseriesID]; err != nil {
		return nil, err
	}
	all := f.samples[timeseriesID]
	if len(all) == 0 {
		return nil, nil
	}
	ts := all[len(all)-1].Timestamp
	return &ts, nil
}

// fakeSink records early-warning events.
type fakeSink struct {
	mu     sync.Mutex
	events []warning.Event
}

func (f *fakeSink) Add(e warning.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *fakeSink) all() []warning.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]warning.Event, len(f.events))
	copy(out, f.events)
	return out
}

func floatPtr(v float64) *float64 { return &v }
