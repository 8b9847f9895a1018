package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mgubran1/dispatchgrid/core/model"
)

// BuilderConfig defines the anchor times applied when a load record leaves
// them unspecified.
type BuilderConfig struct {
	// DefaultPickupHour anchors pickups with no explicit pickup time.
	DefaultPickupHour int `json:"default_pickup_hour"`
	// DefaultDeliveryHour anchors deliveries with no explicit delivery time.
	DefaultDeliveryHour int `json:"default_delivery_hour"`
	// TransitAnchorHour is the representative instant for in-transit days.
	TransitAnchorHour int `json:"transit_anchor_hour"`
}

// SetDefaults applies the dispatcher defaults: 08:00 pickup, 17:00 delivery,
// midday transit anchor.
func (c *BuilderConfig) SetDefaults() {
	if c.DefaultPickupHour == 0 {
		c.DefaultPickupHour = 8
	}
	if c.DefaultDeliveryHour == 0 {
		c.DefaultDeliveryHour = 17
	}
	if c.TransitAnchorHour == 0 {
		c.TransitAnchorHour = 12
	}
}

// Validate checks that all anchor hours fall inside a day.
func (c BuilderConfig) Validate() error {
	for _, h := range []int{c.DefaultPickupHour, c.DefaultDeliveryHour, c.TransitAnchorHour} {
		if h < 0 || h > 23 {
			return fmt.Errorf("anchor hour %d outside [0,23]", h)
		}
	}
	return nil
}

// Builder derives a day's schedule events from driver assignment records.
type Builder struct {
	cfg BuilderConfig
}

// NewBuilder returns a Builder using the given anchor configuration.
func NewBuilder(cfg BuilderConfig) Builder {
	cfg.SetDefaults()
	return Builder{cfg: cfg}
}

// Build produces the schedule events for date across all drivers. For each
// load, a pickup event is emitted when the pickup date matches, a delivery
// event when the delivery date matches, and a single in-transit event when
// date falls strictly between the two and the load's status indicates active
// transit. Loads missing both dates, or whose window does not touch date,
// contribute nothing. Driver-level breaks and maintenance applicable to date
// are appended with synthetic reference ids.
//
// The returned slice is freshly allocated and deterministic for identical
// inputs. Ordering is not significant; apply Sort for display order.
func (b Builder) Build(drivers []model.DriverWithLoads, date time.Time) []model.ScheduleEvent {
	var events []model.ScheduleEvent
	for _, d := range drivers {
		for _, l := range d.Loads {
			events = append(events, b.loadEvents(d, l, date)...)
		}
		for _, ev := range d.Events {
			if se, ok := b.driverEvent(d, ev, date); ok {
				events = append(events, se)
			}
		}
	}
	return events
}

func (b Builder) loadEvents(d model.DriverWithLoads, l model.LoadRecord, date time.Time) []model.ScheduleEvent {
	var out []model.ScheduleEvent
	if !l.PickupDate.IsZero() && model.SameDay(l.PickupDate, date) {
		out = append(out, model.ScheduleEvent{
			Type:          model.EventPickup,
			Time:          anchorOn(date, l.PickupTime, b.cfg.DefaultPickupHour),
			DriverName:    d.DriverName,
			VehicleID:     d.VehicleID,
			LoadReference: l.LoadReference,
			Location:      l.OriginLocation,
			Status:        l.Status,
		})
	}
	if !l.DeliveryDate.IsZero() && model.SameDay(l.DeliveryDate, date) {
		out = append(out, model.ScheduleEvent{
			Type:          model.EventDelivery,
			Time:          anchorOn(date, l.DeliveryTime, b.cfg.DefaultDeliveryHour),
			DriverName:    d.DriverName,
			VehicleID:     d.VehicleID,
			LoadReference: l.LoadReference,
			Location:      l.DestLocation,
			Status:        l.Status,
		})
	}
	if b.interiorTransitDay(l, date) && l.InActiveTransit() {
		out = append(out, model.ScheduleEvent{
			Type:          model.EventInTransit,
			Time:          dayAt(date, b.cfg.TransitAnchorHour, 0),
			StartTime:     anchorOn(l.PickupDate, l.PickupTime, b.cfg.DefaultPickupHour),
			EndTime:       anchorOn(l.DeliveryDate, l.DeliveryTime, b.cfg.DefaultDeliveryHour),
			DriverName:    d.DriverName,
			VehicleID:     d.VehicleID,
			LoadReference: l.LoadReference,
			Location:      fmt.Sprintf("en route: %s → %s", l.OriginLocation, l.DestLocation),
			Status:        l.Status,
		})
	}
	return out
}

// interiorTransitDay reports whether date lies strictly between pickup and
// delivery dates, both endpoints excluded. Equal pickup and delivery dates
// therefore never produce a transit day.
func (b Builder) interiorTransitDay(l model.LoadRecord, date time.Time) bool {
	if l.PickupDate.IsZero() || l.DeliveryDate.IsZero() {
		return false
	}
	day := dayAt(date, 0, 0)
	pickup := dayAt(l.PickupDate, 0, 0)
	delivery := dayAt(l.DeliveryDate, 0, 0)
	return day.After(pickup) && day.Before(delivery)
}

func (b Builder) driverEvent(d model.DriverWithLoads, ev model.DriverEvent, date time.Time) (model.ScheduleEvent, bool) {
	if ev.Date.IsZero() || !model.SameDay(ev.Date, date) {
		return model.ScheduleEvent{}, false
	}
	se := model.ScheduleEvent{
		Type:          ev.Type,
		Time:          onDay(date, ev.Start),
		DriverName:    d.DriverName,
		VehicleID:     d.VehicleID,
		LoadReference: syntheticRef(d.DriverName, ev, date),
		Location:      ev.Location,
		Status:        ev.Notes,
	}
	if !ev.End.IsZero() {
		se.StartTime = se.Time
		se.EndTime = onDay(date, ev.End)
	}
	return se, true
}

// syntheticRef derives a stable reference id for a driver-level event so
// repeated builds of the same inputs yield element-wise equal results.
func syntheticRef(driver string, ev model.DriverEvent, date time.Time) string {
	key := fmt.Sprintf("%s|%s|%s|%s", driver, ev.Type, date.Format("2006-01-02"), ev.Start.Format("15:04"))
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	return model.DriverRefPrefix + id.String()[:8]
}

// anchorOn places the clock time of t onto day, falling back to defaultHour
// when t is unset.
func anchorOn(day, t time.Time, defaultHour int) time.Time {
	if t.IsZero() {
		return dayAt(day, defaultHour, 0)
	}
	return onDay(day, t)
}

func onDay(day, clock time.Time) time.Time {
	return dayAt(day, clock.Hour(), clock.Minute())
}

func dayAt(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
