package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sony/gobreaker"

	"github.com/openmeteo/enhydris-synoptic/internal/models"
)

// ErrStoreUnavailable marks a transient failure reaching the time-series
// store. It fails only the affected station; the scheduler retries on the
// next run rather than in-loop.
var ErrStoreUnavailable = errors.New("time-series store unavailable")

const defaultQueryTimeout = 30 * time.Second

// TimeseriesRepository is the time-series store: raw samples in PostgreSQL,
// read through a circuit breaker so that a struggling database trips fast
// instead of stalling every station of a run.
type TimeseriesRepository struct {
	db      *sql.DB
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
}

// NewTimeseriesRepository returns a repository with the given per-query
// timeout (a default applies when zero).
func NewTimeseriesRepository(db *sql.DB, queryTimeout time.Duration) *TimeseriesRepository {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &TimeseriesRepository{
		db:      db,
		timeout: queryTimeout,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "timeseries-store",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// GetRange returns the samples of a series in [start, end], ordered by
// timestamp. A NULL value is represented as NaN, matching how missing
// measurements appear in reports.
func (r *TimeseriesRepository) GetRange(ctx context.Context, timeseriesID int64, start, end time.Time) ([]models.Sample, error) {
	const query = `
		SELECT "timestamp", value
		FROM timeseries_records
		WHERE timeseries_id = $1 AND "timestamp" BETWEEN $2 AND $3
		ORDER BY "timestamp"
	`

	result, err := r.execute(ctx, func(ctx context.Context) (interface{}, error) {
		rows, err := r.db.QueryContext(ctx, query, timeseriesID, start, end)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var samples []models.Sample
		for rows.Next() {
			var (
				ts    time.Time
				value sql.NullFloat64
			)
			if err := rows.Scan(&ts, &value); err != nil {
				return nil, err
			}
			sample := models.Sample{Timestamp: models.Naive(ts), Value: math.NaN()}
			if value.Valid {
				sample.Value = value.Float64
			}
			samples = append(samples, sample)
		}
		return samples, rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Sample), nil
}

// LatestTimestamp returns the end-of-data timestamp of a series, or nil when
// the series has no samples.
func (r *TimeseriesRepository) LatestTimestamp(ctx context.Context, timeseriesID int64) (*time.Time, error) {
	const query = `
		SELECT "timestamp"
		FROM timeseries_records
		WHERE timeseries_id = $1
		ORDER BY "timestamp" DESC
		LIMIT 1
	`

	result, err := r.execute(ctx, func(ctx context.Context) (interface{}, error) {
		var ts time.Time
		err := r.db.QueryRowContext(ctx, query, timeseriesID).Scan(&ts)
		if errors.Is(err, sql.ErrNoRows) {
			return (*time.Time)(nil), nil
		}
		if err != nil {
			return nil, err
		}
		naive := models.Naive(ts)
		return &naive, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*time.Time), nil
}

// execute runs fn under the query timeout and the circuit breaker, mapping
// every failure to ErrStoreUnavailable.
func (r *TimeseriesRepository) execute(ctx context.Context, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.breaker.Execute(func() (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return result, nil
}
