package warning

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/openmeteo/enhydris-synoptic/internal/notifier"
)

// Queue accumulates early-warning events for one group during one run.
// Events are keyed by series display title: a later event for the same title
// overwrites an earlier one, so only the most recent in-run violation per
// variable is reported. The queue is discarded after the run.
type Queue struct {
	mu     sync.Mutex
	events map[string]Event
}

// NewQueue returns an empty queue. Each run must use its own instance.
func NewQueue() *Queue {
	return &Queue{events: make(map[string]Event)}
}

// Add records an event, replacing any earlier event for the same variable.
func (q *Queue) Add(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events[e.Variable] = e
}

// Len reports how many distinct variables have a pending event.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Flush builds a single notification from the collected events and delivers
// it. With no events, or no recipients, nothing is sent.
func (q *Queue) Flush(ctx context.Context, n notifier.Notifier, recipients []string) error {
	q.mu.Lock()
	events := make([]Event, 0, len(q.events))
	for _, e := range q.events {
		events = append(events, e)
	}
	q.events = make(map[string]Event)
	q.mu.Unlock()

	if len(events) == 0 || len(recipients) == 0 {
		return nil
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Variable < events[j].Variable })

	stationSet := make(map[string]struct{})
	for _, e := range events {
		stationSet[e.Station] = struct{}{}
	}
	stations := make([]string, 0, len(stationSet))
	for s := range stationSet {
		stations = append(stations, s)
	}
	sort.Strings(stations)

	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, e.Line())
	}

	subject := fmt.Sprintf("Synoptic early warning (%s)", strings.Join(stations, ", "))
	body := strings.Join(lines, "\n") + "\n"

	return n.Send(ctx, subject, body, recipients)
}
