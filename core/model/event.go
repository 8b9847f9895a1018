package model

import (
	"fmt"
	"strings"
	"time"
)

// EventType identifies the kind of schedule event shown on the timeline.
type EventType int

const (
	EventPickup EventType = iota
	EventDelivery
	EventInTransit
	EventBreak
	EventMaintenance
)

// NoLoadRef is the sentinel LoadReference used for events that do not
// originate from a load record (breaks, maintenance).
const NoLoadRef = "N/A"

// DriverRefPrefix prefixes the synthetic reference ids assigned to
// driver-level events so viewers can tell them apart from load references.
const DriverRefPrefix = "DRV-"

// String returns a human-readable representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventPickup:
		return "Pickup"
	case EventDelivery:
		return "Delivery"
	case EventInTransit:
		return "In Transit"
	case EventBreak:
		return "Break"
	case EventMaintenance:
		return "Maintenance"
	default:
		return "unknown"
	}
}

// ParseEventType maps a query token to an EventType. Matching is
// case-insensitive and accepts both "in transit" and "in_transit".
func ParseEventType(s string) (EventType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pickup":
		return EventPickup, nil
	case "delivery":
		return EventDelivery, nil
	case "in transit", "in_transit", "intransit":
		return EventInTransit, nil
	case "break":
		return EventBreak, nil
	case "maintenance":
		return EventMaintenance, nil
	default:
		return EventPickup, fmt.Errorf("unknown event type %q", s)
	}
}

// ColorHint returns the presentation color associated with the event type.
// It is purely advisory; the renderer owns all styling decisions.
func (t EventType) ColorHint() string {
	switch t {
	case EventPickup:
		return "#2e7d32"
	case EventDelivery:
		return "#1565c0"
	case EventInTransit:
		return "#f9a825"
	case EventBreak:
		return "#757575"
	case EventMaintenance:
		return "#c62828"
	default:
		return "#000000"
	}
}

// ScheduleEvent is one occurrence on a day's dispatch timeline. Events are
// immutable value objects rebuilt on every refresh; they are never persisted.
type ScheduleEvent struct {
	Type EventType `json:"type"`

	// Time is the anchor instant used for sorting and single-point placement.
	// For span events it equals StartTime.
	Time time.Time `json:"time"`

	// StartTime and EndTime bound span events such as in-transit blocks.
	// They are zero for point events.
	StartTime time.Time `json:"start_time,omitempty"`
	EndTime   time.Time `json:"end_time,omitempty"`

	DriverName string `json:"driver_name"`
	VehicleID  string `json:"vehicle_id"`

	// LoadReference links back to the source load record, or NoLoadRef for
	// driver-level events.
	LoadReference string `json:"load_reference"`

	Location string `json:"location"`
	Status   string `json:"status"`
}

// IsSpan reports whether the event occupies a duration on the timeline.
func (e ScheduleEvent) IsSpan() bool {
	return !e.StartTime.IsZero() && !e.EndTime.IsZero()
}

// Anchor returns the instant used for sorting and single-point grid
// placement. Span events may carry a representative anchor in Time that
// differs from StartTime, e.g. an in-transit block anchored at midday of
// the displayed day while spanning pickup to delivery.
func (e ScheduleEvent) Anchor() time.Time {
	if !e.Time.IsZero() {
		return e.Time
	}
	return e.StartTime
}

// FromLoad reports whether the event was generated from a load record.
func (e ScheduleEvent) FromLoad() bool {
	if e.LoadReference == "" || e.LoadReference == NoLoadRef {
		return false
	}
	return !strings.HasPrefix(e.LoadReference, DriverRefPrefix)
}
