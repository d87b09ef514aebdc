package aggregator

import (
	"errors"
	"time"

	"github.com/openmeteo/enhydris-synoptic/internal/models"
)

// ErrNoSample is returned when a series has no sample at the exact requested
// timestamp. Callers turn this into a per-series error status; it never
// fails a whole station.
var ErrNoSample = errors.New("no sample at requested timestamp")

// ResolveAt returns the value of the sample whose timestamp equals target
// exactly. No interpolation and no nearest match. Zone information is
// stripped from both sides before comparing, since stored samples are
// zone-naive.
func ResolveAt(samples []models.Sample, target time.Time) (float64, error) {
	want := models.Naive(target)
	for _, s := range samples {
		if models.Naive(s.Timestamp).Equal(want) {
			return s.Value, nil
		}
	}
	return 0, ErrNoSample
}
