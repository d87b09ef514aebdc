package warning

import (
	"fmt"
	"strconv"
)

// Kind says which limit a value crossed.
type Kind string

const (
	KindLow  Kind = "low"
	KindHigh Kind = "high"
)

// Event is one out-of-range classification observed during a run.
type Event struct {
	Station   string
	Variable  string // series display title
	Timestamp string // common date, minute precision, zone-naive
	Value     float64
	Kind      Kind
	LowLimit  *float64
	HighLimit *float64
}

// Line renders the event as one report line, e.g.
// "Komboti 2015-10-22 15:20 Wind gust 4.1 (high limit 4)".
func (e Event) Line() string {
	limit := 0.0
	switch e.Kind {
	case KindLow:
		if e.LowLimit != nil {
			limit = *e.LowLimit
		}
	case KindHigh:
		if e.HighLimit != nil {
			limit = *e.HighLimit
		}
	}
	return fmt.Sprintf("%s %s %s %s (%s limit %s)",
		e.Station,
		e.Timestamp,
		e.Variable,
		formatFloat(e.Value),
		e.Kind,
		formatFloat(limit),
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
