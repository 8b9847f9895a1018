package schedule

import (
	"sort"

	"github.com/mgubran1/dispatchgrid/core/model"
)

// Less is the total display ordering over schedule events: ascending by
// anchor instant, ties broken by driver name then event type so repeated
// sorts of the same set always agree.
func Less(a, b model.ScheduleEvent) bool {
	at, bt := a.Anchor(), b.Anchor()
	if !at.Equal(bt) {
		return at.Before(bt)
	}
	if a.DriverName != b.DriverName {
		return a.DriverName < b.DriverName
	}
	return a.Type < b.Type
}

// Sort orders events for display without mutating the input slice.
func Sort(events []model.ScheduleEvent) []model.ScheduleEvent {
	out := make([]model.ScheduleEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}
