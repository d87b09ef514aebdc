package cache_test

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openmeteo/enhydris-synoptic/internal/cache"
	"github.com/openmeteo/enhydris-synoptic/internal/models"
)

type fakeKV struct {
	mu      sync.Mutex
	entries map[string]fakeEntry
}

type fakeEntry struct {
	value string
	ttl   time.Duration
}

func newFakeKV() *fakeKV {
	return &fakeKV{entries: make(map[string]fakeEntry)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return entry.value, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = fakeEntry{value: value, ttl: ttl}
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func sampleReport() models.StationReport {
	commonDate := time.Date(2015, 10, 22, 15, 20, 0, 0, time.UTC)
	return models.StationReport{
		Aggregate: &models.StationAggregate{
			Station:    models.GroupStation{ID: 1, StationName: "Komboti"},
			CommonDate: &commonDate,
			Series: []models.SeriesSnapshot{
				{
					Series: models.SynopticSeries{SeriesName: "Air temperature"},
					Value:  floatPtr(17),
					Status: models.StatusOK,
				},
				{
					Series: models.SynopticSeries{SeriesName: "Wind speed", Title: "Wind", Subtitle: "gust"},
					Value:  floatPtr(4.1),
					Status: models.StatusHigh,
				},
			},
		},
		Freshness: models.FreshnessRecent,
	}
}

func TestStoreStationAggregate(t *testing.T) {
	kv := newFakeKV()
	mgr := cache.NewManager(kv, 20*time.Minute, zap.NewNop())

	require.NoError(t, mgr.StoreStationAggregate(context.Background(), "mygroup", sampleReport()))

	raw, err := kv.Get(context.Background(), "synoptic:mygroup:station:1")
	require.NoError(t, err)
	require.Equal(t, 20*time.Minute, kv.entries["synoptic:mygroup:station:1"].ttl)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	require.Equal(t, "Komboti", payload["station"])
	require.Equal(t, "recent", payload["freshness"])
	require.Equal(t, false, payload["error"])

	series := payload["series"].([]interface{})
	require.Len(t, series, 2)
	first := series[0].(map[string]interface{})
	require.Equal(t, "Air temperature", first["title"])
	require.Equal(t, 17.0, first["value"])
	require.Equal(t, "ok", first["status"])
	second := series[1].(map[string]interface{})
	require.Equal(t, "Wind (gust)", second["title"])
	require.Equal(t, "high", second["status"])
}

func TestStoreStationAggregateDropsNaN(t *testing.T) {
	kv := newFakeKV()
	mgr := cache.NewManager(kv, time.Minute, zap.NewNop())

	report := sampleReport()
	report.Aggregate.Series[0].Value = floatPtr(math.NaN())
	require.NoError(t, mgr.StoreStationAggregate(context.Background(), "mygroup", report))

	raw, err := kv.Get(context.Background(), "synoptic:mygroup:station:1")
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	first := payload["series"].([]interface{})[0].(map[string]interface{})
	require.Nil(t, first["value"])
}

func TestFakeKVMiss(t *testing.T) {
	kv := newFakeKV()
	_, err := kv.Get(context.Background(), "absent")
	require.ErrorIs(t, err, cache.ErrMiss)
}
