package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/openmeteo/enhydris-synoptic/internal/models"
)

// CommonDate computes the single reference timestamp for a station: the
// minimum, over all series that have data, of each series' latest sample
// timestamp. This is a cheap approximation of the last common date; it is
// exact whenever all series share a cadence and at most one of them lags.
// Returns nil when no series has any data.
func CommonDate(ctx context.Context, store Store, series []models.SynopticSeries) (*time.Time, error) {
	var result *time.Time
	for _, s := range series {
		latest, err := store.LatestTimestamp(ctx, s.TimeseriesID)
		if err != nil {
			return nil, fmt.Errorf("latest timestamp of series %d: %w", s.TimeseriesID, err)
		}
		if latest == nil {
			continue
		}
		ts := models.Naive(*latest)
		if result == nil || ts.Before(*result) {
			result = &ts
		}
	}
	return result, nil
}
