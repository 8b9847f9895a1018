package schedule

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mgubran1/dispatchgrid/core/model"
)

// Summary holds counts and simple statistics over a filtered event list.
// It is recomputed from scratch on every refresh and never cached.
type Summary struct {
	TotalEvents       int                     `json:"total_events"`
	ActiveDriverCount int                     `json:"active_driver_count"`
	CountsByType      map[model.EventType]int `json:"counts_by_type"`
	// CompletionRate is the fraction of events in a terminal status,
	// in [0,1]. Zero when the list is empty.
	CompletionRate float64 `json:"completion_rate"`
	// MeanEventsPerDriver averages the per-driver event counts.
	MeanEventsPerDriver float64 `json:"mean_events_per_driver"`
}

// Summarize derives the summary for the given event list.
func Summarize(events []model.ScheduleEvent) Summary {
	s := Summary{
		TotalEvents:  len(events),
		CountsByType: make(map[model.EventType]int),
	}
	perDriver := make(map[string]float64)
	completed := 0
	for _, e := range events {
		s.CountsByType[e.Type]++
		perDriver[e.DriverName]++
		if model.IsTerminalStatus(e.Status) {
			completed++
		}
	}
	s.ActiveDriverCount = len(perDriver)
	if s.TotalEvents > 0 {
		s.CompletionRate = float64(completed) / float64(s.TotalEvents)
	}
	if len(perDriver) > 0 {
		counts := make([]float64, 0, len(perDriver))
		for _, n := range perDriver {
			counts = append(counts, n)
		}
		s.MeanEventsPerDriver = stat.Mean(counts, nil)
	}
	return s
}
