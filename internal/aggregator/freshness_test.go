package aggregator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openmeteo/enhydris-synoptic/internal/aggregator"
	"github.com/openmeteo/enhydris-synoptic/internal/models"
)

func TestEvaluateFreshnessNilCommonDateIsOld(t *testing.T) {
	got := aggregator.EvaluateFreshness(nil, time.UTC, time.Hour, time.Now())
	require.Equal(t, models.FreshnessOld, got)
}

func TestEvaluateFreshnessBoundary(t *testing.T) {
	cd := time.Date(2015, 10, 22, 15, 20, 0, 0, time.UTC)
	limit := time.Hour

	// Oldness exactly at the limit is still recent; the comparison is strict.
	exactlyAtLimit := cd.Add(limit)
	require.Equal(t, models.FreshnessRecent, aggregator.EvaluateFreshness(&cd, time.UTC, limit, exactlyAtLimit))

	justOver := cd.Add(limit + time.Nanosecond)
	require.Equal(t, models.FreshnessOld, aggregator.EvaluateFreshness(&cd, time.UTC, limit, justOver))
}

func TestEvaluateFreshnessFlipsOverTimeWithoutRefetch(t *testing.T) {
	cd := time.Date(2015, 10, 22, 15, 20, 0, 0, time.UTC)
	limit := time.Hour

	before := cd.Add(30 * time.Minute)
	after := cd.Add(2 * time.Hour)

	require.Equal(t, models.FreshnessRecent, aggregator.EvaluateFreshness(&cd, time.UTC, limit, before))
	require.Equal(t, models.FreshnessOld, aggregator.EvaluateFreshness(&cd, time.UTC, limit, after))
}

func TestEvaluateFreshnessInterpretsCommonDateInGroupZone(t *testing.T) {
	// The zone-naive common date 15:20 means 15:20 in the group's zone
	// (UTC+2), i.e. 13:20 UTC.
	cd := time.Date(2015, 10, 22, 15, 20, 0, 0, time.UTC)
	zone := time.FixedZone("EET", 2*60*60)
	limit := time.Hour

	nowUTC := time.Date(2015, 10, 22, 14, 0, 0, 0, time.UTC) // 40 minutes after 13:20 UTC
	require.Equal(t, models.FreshnessRecent, aggregator.EvaluateFreshness(&cd, zone, limit, nowUTC))

	laterUTC := time.Date(2015, 10, 22, 14, 30, 0, 0, time.UTC) // 70 minutes after
	require.Equal(t, models.FreshnessOld, aggregator.EvaluateFreshness(&cd, zone, limit, laterUTC))
}
