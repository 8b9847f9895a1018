package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/mgubran1/dispatchgrid/core/model"
	"github.com/mgubran1/dispatchgrid/core/schedule"
)

const clockFormat = "15:04"

// WriteJSON writes the day's events to w in JSON format.
func WriteJSON(w io.Writer, events []model.ScheduleEvent) error {
	enc := json.NewEncoder(w)
	return enc.Encode(events)
}

// WriteCSV writes the day's events to w as the dispatch sheet used by the
// office reports.
func WriteCSV(w io.Writer, events []model.ScheduleEvent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "type", "driver", "vehicle", "load_ref", "location", "status"}); err != nil {
		return err
	}
	for _, e := range events {
		rec := []string{
			e.Anchor().Format(clockFormat),
			e.Type.String(),
			e.DriverName,
			e.VehicleID,
			e.LoadReference,
			e.Location,
			e.Status,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes the aggregated counts beneath a header row.
func WriteSummaryCSV(w io.Writer, s schedule.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"metric", "value"}); err != nil {
		return err
	}
	rows := [][]string{
		{"total_events", strconv.Itoa(s.TotalEvents)},
		{"active_drivers", strconv.Itoa(s.ActiveDriverCount)},
		{"completion_rate", strconv.FormatFloat(s.CompletionRate, 'f', 3, 64)},
		{"mean_events_per_driver", strconv.FormatFloat(s.MeanEventsPerDriver, 'f', 3, 64)},
	}
	for typ := model.EventPickup; typ <= model.EventMaintenance; typ++ {
		if n, ok := s.CountsByType[typ]; ok {
			rows = append(rows, []string{"events_" + typ.String(), strconv.Itoa(n)})
		}
	}
	for _, rec := range rows {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
