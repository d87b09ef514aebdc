package aggregator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openmeteo/enhydris-synoptic/internal/models"
	"github.com/openmeteo/enhydris-synoptic/internal/warning"
)

// windowLength is the span of samples retrieved before the common date. The
// window plus the sample at the common date itself cover exactly 1440
// minutes without counting the boundary minute twice.
const windowLength = 1439 * time.Minute

// eventTimeLayout is the minute-precision zone-naive format used in
// early-warning messages.
const eventTimeLayout = "2006-01-02 15:04"

// StationAggregator computes the per-run aggregate of one group station.
type StationAggregator struct {
	store  Store
	logger *zap.Logger
}

// NewStationAggregator returns an aggregator reading from the given store.
func NewStationAggregator(store Store, logger *zap.Logger) *StationAggregator {
	return &StationAggregator{store: store, logger: logger}
}

// Aggregate resolves the station's common date, then, for every series in
// display order, fetches the 24-hour window, resolves the value at the
// common date, classifies it, and reports low/high classifications to sink.
// A store failure is fatal for this station only; a missing sample merely
// sets the aggregate's Error flag.
func (a *StationAggregator) Aggregate(ctx context.Context, station models.GroupStation, sink WarningSink) (*models.StationAggregate, error) {
	agg := &models.StationAggregate{Station: station}

	commonDate, err := CommonDate(ctx, a.store, station.Series)
	if err != nil {
		return nil, fmt.Errorf("station %q: %w", station.StationName, err)
	}
	if commonDate == nil {
		// A station with no data yet is empty, not broken.
		return agg, nil
	}
	agg.CommonDate = commonDate

	start := commonDate.Add(-windowLength)
	agg.Series = make([]models.SeriesSnapshot, 0, len(station.Series))

	for _, series := range station.Series {
		samples, err := a.store.GetRange(ctx, series.TimeseriesID, start, *commonDate)
		if err != nil {
			return nil, fmt.Errorf("station %q series %q: %w", station.StationName, series.DisplayTitle(), err)
		}

		snapshot := models.SeriesSnapshot{Series: series, Samples: samples}

		value, err := ResolveAt(samples, *commonDate)
		if err != nil {
			agg.Error = true
			a.logger.Debug("no sample at common date",
				zap.String("station", station.StationName),
				zap.String("series", series.DisplayTitle()),
				zap.Time("common_date", *commonDate),
			)
		} else {
			snapshot.Value = &value
		}

		snapshot.Status = Classify(snapshot.Value, series.LowLimit, series.HighLimit)
		if sink != nil && (snapshot.Status == models.StatusLow || snapshot.Status == models.StatusHigh) {
			sink.Add(warning.Event{
				Station:   station.StationName,
				Variable:  series.DisplayTitle(),
				Timestamp: commonDate.Format(eventTimeLayout),
				Value:     value,
				Kind:      warning.Kind(snapshot.Status),
				LowLimit:  series.LowLimit,
				HighLimit: series.HighLimit,
			})
		}

		agg.Series = append(agg.Series, snapshot)
	}

	return agg, nil
}
