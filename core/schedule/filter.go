package schedule

import (
	"strings"

	"github.com/mgubran1/dispatchgrid/core/model"
)

// Criteria describes the independent predicates combined by Filter. Nil or
// empty fields impose no restriction; active fields combine with logical AND.
type Criteria struct {
	// Type restricts events to a single event type when non-nil.
	Type *model.EventType
	// DriverName requires an exact driver name match when non-empty.
	DriverName string
	// SearchText is matched case-insensitively as a substring of the driver
	// name, load reference, location or status. Any one field matching keeps
	// the event.
	SearchText string
	// IncludeCompleted keeps events whose status is terminal (completed,
	// delivered, paid). When false those events are excluded.
	IncludeCompleted bool
}

// And merges two criteria into the equivalent combined criteria. A field set
// on both sides must agree; the stricter IncludeCompleted wins. Merging is
// how incremental filtering stays equivalent to one combined pass.
func (c Criteria) And(other Criteria) Criteria {
	merged := c
	if other.Type != nil {
		merged.Type = other.Type
	}
	if other.DriverName != "" {
		merged.DriverName = other.DriverName
	}
	if other.SearchText != "" {
		merged.SearchText = other.SearchText
	}
	merged.IncludeCompleted = c.IncludeCompleted && other.IncludeCompleted
	return merged
}

// Matches reports whether the event satisfies every active predicate.
func (c Criteria) Matches(e model.ScheduleEvent) bool {
	if c.Type != nil && e.Type != *c.Type {
		return false
	}
	if c.DriverName != "" && e.DriverName != c.DriverName {
		return false
	}
	if !c.IncludeCompleted && model.IsTerminalStatus(e.Status) {
		return false
	}
	if c.SearchText != "" && !searchMatch(e, c.SearchText) {
		return false
	}
	return true
}

func searchMatch(e model.ScheduleEvent, text string) bool {
	needle := strings.ToLower(text)
	for _, field := range []string{e.DriverName, e.LoadReference, e.Location, e.Status} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Filter returns the events satisfying the criteria. The input slice is
// never mutated; the result is a fresh slice preserving input order.
func Filter(events []model.ScheduleEvent, c Criteria) []model.ScheduleEvent {
	out := make([]model.ScheduleEvent, 0, len(events))
	for _, e := range events {
		if c.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
