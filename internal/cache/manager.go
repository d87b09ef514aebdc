package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/openmeteo/enhydris-synoptic/internal/models"
)

// Manager publishes computed station aggregates to the KV store so that
// interactive dashboards can read current values without touching the
// database. Entries expire after ttl; the next run republishes them.
type Manager struct {
	kv     KV
	ttl    time.Duration
	logger *zap.Logger
}

// NewManager returns a cache manager.
func NewManager(kv KV, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{kv: kv, ttl: ttl, logger: logger}
}

// stationPayload is the JSON shape published per station.
type stationPayload struct {
	Station    string          `json:"station"`
	CommonDate *time.Time      `json:"common_date"`
	Freshness  string          `json:"freshness"`
	Error      bool            `json:"error"`
	Series     []seriesPayload `json:"series"`
}

type seriesPayload struct {
	Title  string   `json:"title"`
	Value  *float64 `json:"value"`
	Status string   `json:"status"`
}

// StoreStationAggregate serializes the aggregate and writes it under
// synoptic:<slug>:station:<id>.
func (m *Manager) StoreStationAggregate(ctx context.Context, groupSlug string, report models.StationReport) error {
	agg := report.Aggregate
	key := fmt.Sprintf("synoptic:%s:station:%d", groupSlug, agg.Station.ID)

	payload := stationPayload{
		Station:    agg.Station.StationName,
		CommonDate: agg.CommonDate,
		Freshness:  string(report.Freshness),
		Error:      agg.Error,
		Series:     make([]seriesPayload, 0, len(agg.Series)),
	}
	for _, snap := range agg.Series {
		value := snap.Value
		if value != nil && math.IsNaN(*value) {
			// NaN is not representable in JSON.
			value = nil
		}
		payload.Series = append(payload.Series, seriesPayload{
			Title:  snap.Series.FullName(),
			Value:  value,
			Status: string(snap.Status),
		})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal station aggregate: %w", err)
	}
	if err := m.kv.Set(ctx, key, string(data), m.ttl); err != nil {
		return fmt.Errorf("store station aggregate: %w", err)
	}

	m.logger.Debug("published station aggregate",
		zap.String("key", key),
		zap.String("station", agg.Station.StationName),
	)
	return nil
}
