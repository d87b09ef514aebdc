package aggregator

import (
	"time"

	"github.com/openmeteo/enhydris-synoptic/internal/models"
)

// EvaluateFreshness compares a station's common date against now. A nil
// common date is old; otherwise the station is old when its data is strictly
// older than the limit, so an oldness exactly equal to the limit is still
// recent. The common date is zone-naive and is interpreted in loc (UTC when
// loc is nil).
func EvaluateFreshness(commonDate *time.Time, loc *time.Location, limit time.Duration, now time.Time) models.Freshness {
	if commonDate == nil {
		return models.FreshnessOld
	}
	if loc == nil {
		loc = time.UTC
	}
	cd := *commonDate
	absolute := time.Date(cd.Year(), cd.Month(), cd.Day(), cd.Hour(), cd.Minute(), cd.Second(), cd.Nanosecond(), loc)
	if now.Sub(absolute) > limit {
		return models.FreshnessOld
	}
	return models.FreshnessRecent
}
