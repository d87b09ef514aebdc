package aggregator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openmeteo/enhydris-synoptic/internal/aggregator"
	"github.com/openmeteo/enhydris-synoptic/internal/models"
)

func seriesList(timeseriesIDs ...int64) []models.SynopticSeries {
	out := make([]models.SynopticSeries, 0, len(timeseriesIDs))
	for i, id := range timeseriesIDs {
		out = append(out, models.SynopticSeries{ID: int64(i + 1), TimeseriesID: id, Order: i + 1})
	}
	return out
}

func TestCommonDateIsMinimumOfLatestTimestamps(t *testing.T) {
	store := newFakeStore()
	store.add(1, "2015-10-22 15:00", 0)
	store.add(1, "2015-10-22 15:20", 0)
	store.add(2, "2015-10-22 15:00", 15)
	store.add(2, "2015-10-23 15:20", 38.5) // runs a day ahead

	cd, err := aggregator.CommonDate(context.Background(), store, seriesList(1, 2))
	require.NoError(t, err)
	require.NotNil(t, cd)

	want, _ := time.Parse("2006-01-02 15:04", "2015-10-22 15:20")
	require.True(t, cd.Equal(want), "got %v", *cd)
}

func TestCommonDateIgnoresSeriesWithoutData(t *testing.T) {
	store := newFakeStore()
	store.add(1, "2015-10-22 15:20", 0)
	// Series 2 has no samples at all.

	cd, err := aggregator.CommonDate(context.Background(), store, seriesList(1, 2))
	require.NoError(t, err)
	require.NotNil(t, cd)

	want, _ := time.Parse("2006-01-02 15:04", "2015-10-22 15:20")
	require.True(t, cd.Equal(want))
}

func TestCommonDateNilWhenNoSeriesHasData(t *testing.T) {
	store := newFakeStore()

	cd, err := aggregator.CommonDate(context.Background(), store, seriesList(1, 2))
	require.NoError(t, err)
	require.Nil(t, cd)
}

func TestCommonDatePropagatesStoreErrors(t *testing.T) {
	store := newFakeStore()
	store.add(1, "2015-10-22 15:20", 0)
	storeErr := errors.New("connection refused")
	store.errs[2] = storeErr

	_, err := aggregator.CommonDate(context.Background(), store, seriesList(1, 2))
	require.ErrorIs(t, err, storeErr)
}
