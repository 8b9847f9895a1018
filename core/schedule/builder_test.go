package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/mgubran1/dispatchgrid/core/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func smithFixture() []model.DriverWithLoads {
	return []model.DriverWithLoads{{
		DriverName: "J. Smith",
		VehicleID:  "TRK-101",
		Loads: []model.LoadRecord{{
			LoadReference: "LD-1001",
			PickupDate:    day(2025, 7, 2),
			PickupTime:    time.Date(2025, 7, 2, 8, 0, 0, 0, time.Local),
			DeliveryDate:  day(2025, 7, 4),
			DeliveryTime:  time.Date(2025, 7, 4, 17, 0, 0, 0, time.Local),
			OriginLocation: "Columbus, OH",
			DestLocation:   "Chicago, IL",
			Status:         "In Transit",
		}},
	}}
}

func TestBuildPickupDay(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	events := b.Build(smithFixture(), day(2025, 7, 2))
	if len(events) != 1 {
		t.Fatalf("expected 1 event got %d", len(events))
	}
	e := events[0]
	if e.Type != model.EventPickup {
		t.Fatalf("expected pickup got %s", e.Type)
	}
	if e.Time.Hour() != 8 || e.Time.Minute() != 0 {
		t.Fatalf("pickup anchored at %v, want 08:00", e.Time)
	}
	if e.Location != "Columbus, OH" {
		t.Fatalf("pickup location should be origin, got %q", e.Location)
	}
}

func TestBuildInteriorTransitDay(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	events := b.Build(smithFixture(), day(2025, 7, 3))
	if len(events) != 1 {
		t.Fatalf("expected 1 event got %d", len(events))
	}
	e := events[0]
	if e.Type != model.EventInTransit {
		t.Fatalf("expected in-transit got %s", e.Type)
	}
	if e.Anchor().Hour() != 12 {
		t.Fatalf("transit anchor at %v, want midday", e.Anchor())
	}
	if !e.IsSpan() {
		t.Fatalf("transit event should span pickup to delivery")
	}
	if !strings.Contains(e.Location, "en route") {
		t.Fatalf("unexpected transit location %q", e.Location)
	}
}

func TestBuildDeliveryDayAndOutsideWindow(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	events := b.Build(smithFixture(), day(2025, 7, 4))
	if len(events) != 1 || events[0].Type != model.EventDelivery {
		t.Fatalf("expected single delivery, got %#v", events)
	}
	if events[0].Time.Hour() != 17 {
		t.Fatalf("delivery anchored at %v, want 17:00", events[0].Time)
	}
	if got := b.Build(smithFixture(), day(2025, 7, 5)); len(got) != 0 {
		t.Fatalf("expected no events after delivery, got %d", len(got))
	}
}

func TestBuildSameDayPickupDelivery(t *testing.T) {
	drivers := smithFixture()
	drivers[0].Loads[0].DeliveryDate = day(2025, 7, 2)
	drivers[0].Loads[0].DeliveryTime = time.Date(2025, 7, 2, 15, 30, 0, 0, time.Local)

	b := NewBuilder(BuilderConfig{})
	events := b.Build(drivers, day(2025, 7, 2))
	if len(events) != 2 {
		t.Fatalf("expected pickup+delivery, got %d events", len(events))
	}
	types := map[model.EventType]int{}
	for _, e := range events {
		types[e.Type]++
	}
	if types[model.EventPickup] != 1 || types[model.EventDelivery] != 1 || types[model.EventInTransit] != 0 {
		t.Fatalf("same-day load produced wrong event mix: %v", types)
	}
}

func TestBuildTransitRequiresActiveStatus(t *testing.T) {
	// Status is authoritative: a load physically between pickup and delivery
	// but still marked Assigned yields no transit event.
	drivers := smithFixture()
	drivers[0].Loads[0].Status = "Assigned"
	b := NewBuilder(BuilderConfig{})
	if got := b.Build(drivers, day(2025, 7, 3)); len(got) != 0 {
		t.Fatalf("lagging status should suppress transit event, got %d", len(got))
	}
}

func TestBuildDefaultAnchors(t *testing.T) {
	drivers := smithFixture()
	drivers[0].Loads[0].PickupTime = time.Time{}
	drivers[0].Loads[0].DeliveryTime = time.Time{}

	b := NewBuilder(BuilderConfig{})
	pickup := b.Build(drivers, day(2025, 7, 2))
	if pickup[0].Time.Hour() != 8 {
		t.Fatalf("default pickup anchor %v, want 08:00", pickup[0].Time)
	}
	delivery := b.Build(drivers, day(2025, 7, 4))
	if delivery[0].Time.Hour() != 17 {
		t.Fatalf("default delivery anchor %v, want 17:00", delivery[0].Time)
	}
}

func TestBuildMissingDatesExcluded(t *testing.T) {
	drivers := []model.DriverWithLoads{{
		DriverName: "M. Jones",
		Loads:      []model.LoadRecord{{LoadReference: "LD-2000", Status: "Assigned"}},
	}}
	b := NewBuilder(BuilderConfig{})
	if got := b.Build(drivers, day(2025, 7, 2)); len(got) != 0 {
		t.Fatalf("dateless load should be silently excluded, got %d", len(got))
	}
}

func TestBuildDriverEvents(t *testing.T) {
	drivers := []model.DriverWithLoads{{
		DriverName: "M. Jones",
		VehicleID:  "TRK-202",
		Events: []model.DriverEvent{
			{
				Type:     model.EventBreak,
				Date:     day(2025, 7, 2),
				Start:    time.Date(2025, 7, 2, 12, 0, 0, 0, time.Local),
				End:      time.Date(2025, 7, 2, 12, 30, 0, 0, time.Local),
				Location: "Rest Area I-70",
			},
			{
				Type:  model.EventMaintenance,
				Date:  day(2025, 7, 3),
				Start: time.Date(2025, 7, 3, 9, 0, 0, 0, time.Local),
			},
		},
	}}
	b := NewBuilder(BuilderConfig{})
	events := b.Build(drivers, day(2025, 7, 2))
	if len(events) != 1 {
		t.Fatalf("expected only the break, got %d", len(events))
	}
	e := events[0]
	if e.Type != model.EventBreak || !e.IsSpan() {
		t.Fatalf("unexpected break event %#v", e)
	}
	if e.FromLoad() {
		t.Fatalf("driver event must not look like a load event: %q", e.LoadReference)
	}
	if !strings.HasPrefix(e.LoadReference, model.DriverRefPrefix) {
		t.Fatalf("missing synthetic reference: %q", e.LoadReference)
	}
}

func TestBuildIdempotent(t *testing.T) {
	drivers := smithFixture()
	drivers[0].Events = []model.DriverEvent{{
		Type:  model.EventBreak,
		Date:  day(2025, 7, 2),
		Start: time.Date(2025, 7, 2, 12, 0, 0, 0, time.Local),
	}}
	b := NewBuilder(BuilderConfig{})
	first := b.Build(drivers, day(2025, 7, 2))
	second := b.Build(drivers, day(2025, 7, 2))
	if len(first) != len(second) {
		t.Fatalf("length mismatch %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("event %d differs between builds:\n%#v\n%#v", i, first[i], second[i])
		}
	}
}
