package schedule

import (
	"testing"
	"time"

	"github.com/mgubran1/dispatchgrid/core/model"
)

func filterFixture() []model.ScheduleEvent {
	b := NewBuilder(BuilderConfig{})
	var events []model.ScheduleEvent
	events = append(events, b.Build(smithFixture(), day(2025, 7, 2))...)
	events = append(events, b.Build(smithFixture(), day(2025, 7, 3))...)
	events = append(events, b.Build(smithFixture(), day(2025, 7, 4))...)
	return events
}

func TestFilterSearchMatchesDriver(t *testing.T) {
	events := filterFixture()
	got := Filter(events, Criteria{SearchText: "smith", IncludeCompleted: true})
	if len(got) != 3 {
		t.Fatalf("search smith should match all 3 events, got %d", len(got))
	}
}

func TestFilterByType(t *testing.T) {
	events := filterFixture()
	typ := model.EventDelivery
	got := Filter(events, Criteria{Type: &typ, IncludeCompleted: true})
	if len(got) != 1 || got[0].Type != model.EventDelivery {
		t.Fatalf("expected exactly the delivery event, got %#v", got)
	}
}

func TestFilterByDriverExact(t *testing.T) {
	events := filterFixture()
	if got := Filter(events, Criteria{DriverName: "J. Smith", IncludeCompleted: true}); len(got) != 3 {
		t.Fatalf("exact driver match failed, got %d", len(got))
	}
	if got := Filter(events, Criteria{DriverName: "J. Smit", IncludeCompleted: true}); len(got) != 0 {
		t.Fatalf("driver match must be exact, got %d", len(got))
	}
}

func TestFilterExcludesCompleted(t *testing.T) {
	events := []model.ScheduleEvent{
		{Type: model.EventDelivery, DriverName: "A", Status: "Delivered"},
		{Type: model.EventDelivery, DriverName: "B", Status: "PAID"},
		{Type: model.EventPickup, DriverName: "C", Status: "In Transit"},
	}
	got := Filter(events, Criteria{})
	if len(got) != 1 || got[0].DriverName != "C" {
		t.Fatalf("terminal statuses should be excluded, got %#v", got)
	}
	if got := Filter(events, Criteria{IncludeCompleted: true}); len(got) != 3 {
		t.Fatalf("include completed should keep all, got %d", len(got))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	events := filterFixture()
	snapshot := make([]model.ScheduleEvent, len(events))
	copy(snapshot, events)
	typ := model.EventPickup
	_ = Filter(events, Criteria{Type: &typ})
	for i := range events {
		if events[i] != snapshot[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}

// Applying one criteria set on top of another must equal one combined pass.
func TestFilterComposition(t *testing.T) {
	events := filterFixture()
	events = append(events, model.ScheduleEvent{
		Type:       model.EventPickup,
		Time:       time.Date(2025, 7, 2, 9, 0, 0, 0, time.Local),
		DriverName: "M. Jones",
		Location:   "Toledo, OH",
		Status:     "Assigned",
	})

	typ := model.EventPickup
	a := Criteria{SearchText: "smith", IncludeCompleted: true}
	b := Criteria{Type: &typ, IncludeCompleted: true}

	incremental := Filter(Filter(events, a), b)
	combined := Filter(events, a.And(b))
	if len(incremental) != len(combined) {
		t.Fatalf("composition mismatch: %d vs %d", len(incremental), len(combined))
	}
	for i := range incremental {
		if incremental[i] != combined[i] {
			t.Fatalf("composition element %d differs", i)
		}
	}
	if len(combined) != 1 || combined[0].DriverName != "J. Smith" {
		t.Fatalf("expected the Smith pickup only, got %#v", combined)
	}
}

func TestCriteriaAndCompletedStricterWins(t *testing.T) {
	a := Criteria{IncludeCompleted: true}
	b := Criteria{IncludeCompleted: false}
	if a.And(b).IncludeCompleted {
		t.Fatalf("combined criteria must keep the stricter exclusion")
	}
}
