package models

import (
	"fmt"
	"strconv"
	"time"
)

// SynopticGroup is a named reporting configuration. Stations are attached to
// it through GroupStation records; early warnings raised while processing the
// group are mailed to Recipients.
type SynopticGroup struct {
	ID             int64
	Name           string
	Slug           string
	TimeZone       string // IANA name, e.g. "Europe/Athens"
	FreshTimeLimit time.Duration
	Recipients     []string
}

// Location resolves the group's time zone.
func (g *SynopticGroup) Location() (*time.Location, error) {
	if g.TimeZone == "" {
		return nil, fmt.Errorf("group %q has no time zone", g.Slug)
	}
	return time.LoadLocation(g.TimeZone)
}

// GroupStation binds one station to one synoptic group. Order is unique
// within the group and governs rendering sequence.
type GroupStation struct {
	ID          int64
	GroupID     int64
	StationID   int64
	StationName string
	Order       int

	// Series are the synoptic time series of this station, in display order.
	Series []SynopticSeries
}

// SynopticSeries binds one underlying time series to a GroupStation, with
// display overrides, optional warning limits, and optional chart clamp hints.
// GroupWith points at another SynopticSeries of the same station when this
// series is charted and reported jointly with it.
type SynopticSeries struct {
	ID             int64
	GroupStationID int64
	TimeseriesID   int64
	Order          int

	// Read-only attributes of the underlying time series.
	SeriesName string
	UnitSymbol string
	Precision  int

	Title           string
	Subtitle        string
	GroupWith       *int64
	LowLimit        *float64
	HighLimit       *float64
	DefaultChartMin *float64
	DefaultChartMax *float64
}

// DisplayTitle returns the configured title, falling back to the underlying
// time series name.
func (s *SynopticSeries) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.SeriesName
}

// DisplaySubtitle returns the configured subtitle, falling back to the
// underlying time series name.
func (s *SynopticSeries) DisplaySubtitle() string {
	if s.Subtitle != "" {
		return s.Subtitle
	}
	return s.SeriesName
}

// FullName is the title with the subtitle in brackets, e.g. "Wind (gust)".
func (s *SynopticSeries) FullName() string {
	if s.Subtitle != "" {
		return s.DisplayTitle() + " (" + s.Subtitle + ")"
	}
	return s.DisplayTitle()
}

// FormatValue renders a value with the configured precision and unit symbol.
func (s *SynopticSeries) FormatValue(v float64) string {
	formatted := strconv.FormatFloat(v, 'f', s.Precision, 64)
	if s.UnitSymbol == "" {
		return formatted
	}
	return formatted + " " + s.UnitSymbol
}
