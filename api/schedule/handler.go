// Package schedule exposes the day schedule and its summary over HTTP. The
// handlers are thin: filtering, ordering, positioning and aggregation all
// happen in the core packages; nothing here owns visual styling.
package schedule

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mgubran1/dispatchgrid/core/grid"
	"github.com/mgubran1/dispatchgrid/core/model"
	"github.com/mgubran1/dispatchgrid/core/schedule"
)

// Provider supplies the raw (unfiltered, unsorted) event list for a date.
type Provider interface {
	Schedule(date time.Time) ([]model.ScheduleEvent, error)
}

// PositionedEvent pairs an event with its grid coordinate for the requested
// display mode.
type PositionedEvent struct {
	model.ScheduleEvent
	TypeLabel  string          `json:"type_label"`
	ColorHint  string          `json:"color_hint"`
	Coordinate grid.Coordinate `json:"coordinate"`
}

type scheduleResponse struct {
	Date    string            `json:"date"`
	Mode    string            `json:"mode"`
	Events  []PositionedEvent `json:"events"`
	Summary summaryJSON       `json:"summary"`
}

// summaryJSON flattens the typed count map into display labels.
type summaryJSON struct {
	TotalEvents         int            `json:"total_events"`
	ActiveDriverCount   int            `json:"active_driver_count"`
	CountsByType        map[string]int `json:"counts_by_type"`
	CompletionRate      float64        `json:"completion_rate"`
	MeanEventsPerDriver float64        `json:"mean_events_per_driver"`
}

func toSummaryJSON(s schedule.Summary) summaryJSON {
	out := summaryJSON{
		TotalEvents:         s.TotalEvents,
		ActiveDriverCount:   s.ActiveDriverCount,
		CountsByType:        make(map[string]int, len(s.CountsByType)),
		CompletionRate:      s.CompletionRate,
		MeanEventsPerDriver: s.MeanEventsPerDriver,
	}
	for typ, n := range s.CountsByType {
		out.CountsByType[typ.String()] = n
	}
	return out
}

// NewHandler returns an HTTP handler serving GET /api/schedule. Query
// parameters: date (2006-01-02, default today), mode (12h|24h), type,
// driver, q (free-text search), include_completed.
func NewHandler(provider Provider, defaultMode model.DisplayMode, layout grid.Layout) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		date := time.Now()
		if s := r.URL.Query().Get("date"); s != "" {
			parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
			if err != nil {
				http.Error(w, "bad date, want YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			date = parsed
		}

		mode := defaultMode
		if s := r.URL.Query().Get("mode"); s != "" {
			parsed, err := model.ParseDisplayMode(s)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			mode = parsed
		}
		calc, err := grid.NewCalculator(mode.Grid(), layout)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		criteria, err := criteriaFromQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		events, err := provider.Schedule(date)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		display := schedule.Sort(schedule.Filter(events, criteria))

		resp := scheduleResponse{
			Date:    date.Format("2006-01-02"),
			Mode:    mode.String(),
			Events:  make([]PositionedEvent, 0, len(display)),
			Summary: toSummaryJSON(schedule.Summarize(display)),
		}
		for _, e := range display {
			resp.Events = append(resp.Events, PositionedEvent{
				ScheduleEvent: e,
				TypeLabel:     e.Type.String(),
				ColorHint:     e.Type.ColorHint(),
				Coordinate:    calc.Position(e, date),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

func criteriaFromQuery(r *http.Request) (schedule.Criteria, error) {
	q := r.URL.Query()
	c := schedule.Criteria{
		DriverName:       q.Get("driver"),
		SearchText:       q.Get("q"),
		IncludeCompleted: q.Get("include_completed") == "true",
	}
	if s := q.Get("type"); s != "" {
		typ, err := model.ParseEventType(s)
		if err != nil {
			return schedule.Criteria{}, err
		}
		c.Type = &typ
	}
	return c, nil
}
