package aggregator

import (
	"context"
	"time"

	"github.com/openmeteo/enhydris-synoptic/internal/models"
	"github.com/openmeteo/enhydris-synoptic/internal/warning"
)

// Store is the time-series store consumed by the aggregator. GetRange returns
// samples in [start, end] ordered by timestamp; LatestTimestamp returns the
// end-of-data timestamp, or nil when the series has no data at all.
type Store interface {
	GetRange(ctx context.Context, timeseriesID int64, start, end time.Time) ([]models.Sample, error)
	LatestTimestamp(ctx context.Context, timeseriesID int64) (*time.Time, error)
}

// WarningSink receives out-of-range classifications as they are produced.
type WarningSink interface {
	Add(e warning.Event)
}
