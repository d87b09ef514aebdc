package aggregator

import (
	"fmt"
	"sort"

	"github.com/openmeteo/enhydris-synoptic/internal/models"
)

// IntegrityError reports a violated ordering or grouping invariant in a
// station's series configuration.
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string {
	return "series integrity violation: " + e.Reason
}

// CheckSeriesIntegrity validates the series configuration of one station:
// display orders must start at 1 and be contiguous, and series grouped with
// another series must immediately follow it, forming one contiguous run.
// This is an on-demand consistency check; it is not invoked on every
// configuration write.
func CheckSeriesIntegrity(series []models.SynopticSeries) error {
	ordered := make([]models.SynopticSeries, len(series))
	copy(ordered, series)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	byID := make(map[int64]models.SynopticSeries, len(ordered))
	for _, s := range ordered {
		byID[s.ID] = s
	}

	for i, s := range ordered {
		if s.Order != i+1 {
			return &IntegrityError{
				Reason: fmt.Sprintf("series order must start at 1 and be contiguous, found order %d at position %d", s.Order, i+1),
			}
		}
	}

	for i, s := range ordered {
		if s.GroupWith == nil {
			continue
		}
		target, ok := byID[*s.GroupWith]
		if !ok {
			return &IntegrityError{
				Reason: fmt.Sprintf("series %q is grouped with an unknown series (id %d)", s.FullName(), *s.GroupWith),
			}
		}
		if i == 0 {
			return &IntegrityError{
				Reason: fmt.Sprintf("series %q cannot be grouped with a series that follows it", s.FullName()),
			}
		}
		prev := ordered[i-1]
		sameRun := prev.ID == target.ID ||
			(prev.GroupWith != nil && *prev.GroupWith == *s.GroupWith)
		if !sameRun {
			return &IntegrityError{
				Reason: fmt.Sprintf("grouped series must be ordered together: %q is not adjacent to %q", s.FullName(), target.FullName()),
			}
		}
	}

	return nil
}
