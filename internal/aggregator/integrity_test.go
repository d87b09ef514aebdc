package aggregator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openmeteo/enhydris-synoptic/internal/aggregator"
	"github.com/openmeteo/enhydris-synoptic/internal/models"
)

func series(id int64, order int, groupWith *int64) models.SynopticSeries {
	return models.SynopticSeries{ID: id, Order: order, GroupWith: groupWith}
}

func int64Ptr(v int64) *int64 { return &v }

func TestCheckSeriesIntegrityContiguousPasses(t *testing.T) {
	err := aggregator.CheckSeriesIntegrity([]models.SynopticSeries{
		series(1, 1, nil),
		series(2, 2, nil),
		series(3, 3, nil),
	})
	require.NoError(t, err)
}

func TestCheckSeriesIntegrityEmptyPasses(t *testing.T) {
	require.NoError(t, aggregator.CheckSeriesIntegrity(nil))
}

func TestCheckSeriesIntegrityGapFails(t *testing.T) {
	err := aggregator.CheckSeriesIntegrity([]models.SynopticSeries{
		series(1, 1, nil),
		series(2, 2, nil),
		series(3, 4, nil),
	})
	var ierr *aggregator.IntegrityError
	require.ErrorAs(t, err, &ierr)
}

func TestCheckSeriesIntegrityMustStartAtOne(t *testing.T) {
	err := aggregator.CheckSeriesIntegrity([]models.SynopticSeries{
		series(1, 2, nil),
		series(2, 3, nil),
	})
	var ierr *aggregator.IntegrityError
	require.ErrorAs(t, err, &ierr)
}

func TestCheckSeriesIntegrityAdjacentGroupPasses(t *testing.T) {
	// Wind speed at order 3, wind gust at order 4 grouped with it.
	err := aggregator.CheckSeriesIntegrity([]models.SynopticSeries{
		series(1, 1, nil),
		series(2, 2, nil),
		series(3, 3, nil),
		series(4, 4, int64Ptr(3)),
	})
	require.NoError(t, err)
}

func TestCheckSeriesIntegrityNonAdjacentGroupFails(t *testing.T) {
	// Order 4 points at the series holding order 2 but is separated from it
	// by the series at order 3.
	err := aggregator.CheckSeriesIntegrity([]models.SynopticSeries{
		series(1, 1, nil),
		series(2, 2, nil),
		series(3, 3, nil),
		series(4, 4, int64Ptr(2)),
	})
	var ierr *aggregator.IntegrityError
	require.ErrorAs(t, err, &ierr)
}

func TestCheckSeriesIntegrityLongGroupRunPasses(t *testing.T) {
	// Several series grouped with the same leader, all adjacent.
	err := aggregator.CheckSeriesIntegrity([]models.SynopticSeries{
		series(1, 1, nil),
		series(2, 2, int64Ptr(1)),
		series(3, 3, int64Ptr(1)),
		series(4, 4, nil),
	})
	require.NoError(t, err)
}

func TestCheckSeriesIntegrityUnknownGroupTargetFails(t *testing.T) {
	err := aggregator.CheckSeriesIntegrity([]models.SynopticSeries{
		series(1, 1, nil),
		series(2, 2, int64Ptr(99)),
	})
	var ierr *aggregator.IntegrityError
	require.ErrorAs(t, err, &ierr)
}
