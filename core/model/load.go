package model

import (
	"strings"
	"time"
)

// LoadRecord is a single load assignment as supplied by the load/driver
// repository. Dates and times are local-naive; PickupTime and DeliveryTime
// are zero when the dispatcher left them unspecified.
type LoadRecord struct {
	LoadReference string    `json:"load_reference"`
	PickupDate    time.Time `json:"pickup_date"`
	PickupTime    time.Time `json:"pickup_time,omitempty"`
	DeliveryDate  time.Time `json:"delivery_date"`
	DeliveryTime  time.Time `json:"delivery_time,omitempty"`
	OriginLocation string   `json:"origin_location"`
	DestLocation   string   `json:"dest_location"`
	Status         string   `json:"status"`
}

// DriverEvent is a driver-level occurrence independent of any load, such as
// a scheduled break or maintenance stop.
type DriverEvent struct {
	Type     EventType `json:"type"`
	Date     time.Time `json:"date"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end,omitempty"`
	Location string    `json:"location"`
	Notes    string    `json:"notes,omitempty"`
}

// DriverWithLoads groups a driver with the loads and driver-level events
// assigned for a date range.
type DriverWithLoads struct {
	DriverName string        `json:"driver_name"`
	VehicleID  string        `json:"vehicle_id"`
	Loads      []LoadRecord  `json:"loads"`
	Events     []DriverEvent `json:"events,omitempty"`
}

// transitStatuses are the load lifecycle states treated as active transit.
// The status string is authoritative: a load physically between pickup and
// delivery whose status lags behind will not produce an in-transit event.
var transitStatuses = map[string]struct{}{
	"in transit": {},
	"in_transit": {},
	"en route":   {},
}

// InActiveTransit reports whether the load's status indicates active transit.
func (l LoadRecord) InActiveTransit() bool {
	_, ok := transitStatuses[strings.ToLower(strings.TrimSpace(l.Status))]
	return ok
}

// terminalStatuses mark a load as finished for visibility purposes.
var terminalStatuses = [...]string{"completed", "delivered", "paid"}

// IsTerminalStatus reports whether the status marks a finished load.
// Matching is case-insensitive.
func IsTerminalStatus(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	for _, t := range terminalStatuses {
		if s == t {
			return true
		}
	}
	return false
}

// SameDay reports whether two local-naive instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
