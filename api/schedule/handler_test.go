package schedule

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgubran1/dispatchgrid/core/grid"
	"github.com/mgubran1/dispatchgrid/core/model"
	coreschedule "github.com/mgubran1/dispatchgrid/core/schedule"
)

type staticProvider struct {
	events []model.ScheduleEvent
	err    error
}

func (p staticProvider) Schedule(time.Time) ([]model.ScheduleEvent, error) {
	return p.events, p.err
}

func fixtureEvents() []model.ScheduleEvent {
	b := coreschedule.NewBuilder(coreschedule.BuilderConfig{})
	drivers := []model.DriverWithLoads{{
		DriverName: "J. Smith",
		VehicleID:  "TRK-101",
		Loads: []model.LoadRecord{{
			LoadReference:  "LD-1001",
			PickupDate:     time.Date(2025, 7, 2, 0, 0, 0, 0, time.Local),
			DeliveryDate:   time.Date(2025, 7, 2, 0, 0, 0, 0, time.Local),
			OriginLocation: "Columbus, OH",
			DestLocation:   "Chicago, IL",
			Status:         "Assigned",
		}},
	}}
	return b.Build(drivers, time.Date(2025, 7, 2, 0, 0, 0, 0, time.Local))
}

func get(t *testing.T, h http.Handler, url string) (*httptest.ResponseRecorder, scheduleResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var resp scheduleResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestHandlerServesSchedule(t *testing.T) {
	h := NewHandler(staticProvider{events: fixtureEvents()}, model.TwelveHour, grid.Layout{})
	rec, resp := get(t, h, "/api/schedule?date=2025-07-02")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-07-02", resp.Date)
	assert.Equal(t, "12h", resp.Mode)
	require.Len(t, resp.Events, 2)
	// Sorted: pickup 08:00 before delivery 17:00.
	assert.Equal(t, "Pickup", resp.Events[0].TypeLabel)
	assert.Equal(t, "Delivery", resp.Events[1].TypeLabel)
	// 08:00 on the 7-19 window is column 1.
	assert.Equal(t, 1, resp.Events[0].Coordinate.Column)
	assert.Equal(t, 2, resp.Summary.TotalEvents)
	assert.Equal(t, 1, resp.Summary.ActiveDriverCount)
	assert.Equal(t, 1, resp.Summary.CountsByType["Pickup"])
}

func TestHandlerFiltersByType(t *testing.T) {
	h := NewHandler(staticProvider{events: fixtureEvents()}, model.TwelveHour, grid.Layout{})
	rec, resp := get(t, h, "/api/schedule?date=2025-07-02&type=delivery")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "Delivery", resp.Events[0].TypeLabel)
	assert.Equal(t, 1, resp.Summary.TotalEvents)
}

func TestHandlerModeOverride(t *testing.T) {
	h := NewHandler(staticProvider{events: fixtureEvents()}, model.TwelveHour, grid.Layout{})
	rec, resp := get(t, h, "/api/schedule?date=2025-07-02&mode=24h")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "24h", resp.Mode)
	// 08:00 in 24h mode is column 8.
	assert.Equal(t, 8, resp.Events[0].Coordinate.Column)
}

func TestHandlerBadInput(t *testing.T) {
	h := NewHandler(staticProvider{events: fixtureEvents()}, model.TwelveHour, grid.Layout{})
	for _, url := range []string{
		"/api/schedule?date=07-02-2025",
		"/api/schedule?mode=8h",
		"/api/schedule?type=teleport",
	} {
		rec, _ := get(t, h, url)
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)
	}
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	h := NewHandler(staticProvider{}, model.TwelveHour, grid.Layout{})
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
