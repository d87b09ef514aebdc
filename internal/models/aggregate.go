package models

import "time"

// Status classifies a resolved series value against its configured limits.
type Status string

const (
	StatusOK    Status = "ok"
	StatusLow   Status = "low"
	StatusHigh  Status = "high"
	StatusError Status = "error"
)

// Freshness is the verdict on how current a station's data is.
type Freshness string

const (
	FreshnessRecent Freshness = "recent"
	FreshnessOld    Freshness = "old"
)

// Sample is one (timestamp, value) point of a time series. Timestamps are
// zone-naive: the wall-clock fields are meaningful, the location is not.
type Sample struct {
	Timestamp time.Time
	Value     float64
}

// SeriesSnapshot is the per-run view of one synoptic series: the last-24-hour
// window of samples ending at the station's common date, the value resolved
// at the common date (nil when absent), and the resulting status.
type SeriesSnapshot struct {
	Series  SynopticSeries
	Samples []Sample
	Value   *float64
	Status  Status
}

// StationAggregate is the per-run result for one group station. Error is
// informational: it flags that at least one series had no sample at the
// common date, so the rendered page should show a partial-data indicator.
type StationAggregate struct {
	Station    GroupStation
	CommonDate *time.Time
	Series     []SeriesSnapshot
	Error      bool
}

// ChartGroups splits the snapshots into chart units: a snapshot without a
// GroupWith link starts a new chart, linked snapshots join the preceding one.
// Relies on grouped series being adjacent in display order.
func (a *StationAggregate) ChartGroups() [][]SeriesSnapshot {
	var groups [][]SeriesSnapshot
	for _, snap := range a.Series {
		if snap.Series.GroupWith == nil || len(groups) == 0 {
			groups = append(groups, []SeriesSnapshot{snap})
			continue
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], snap)
	}
	return groups
}

// StationReport pairs an aggregate with the freshness verdict taken at
// render time.
type StationReport struct {
	Aggregate *StationAggregate
	Freshness Freshness
}

// Naive strips zone information from a timestamp, keeping the wall-clock
// fields. Stored samples are zone-naive, so lookups compare wall clocks.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
