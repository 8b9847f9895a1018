// Package grid maps schedule events onto a fixed-resolution hourly timeline.
// Coordinates are derived from an event and the active display mode and are
// never stored; the renderer recomputes them on every refresh.
package grid

import (
	"fmt"
	"math"
	"time"

	"github.com/mgubran1/dispatchgrid/core/model"
)

// Coordinate places an event on the grid. Column indexes the hour column the
// event starts in, Offset is the pixel distance from that column's left edge
// and Width is the rendered span width.
type Coordinate struct {
	Column int     `json:"column"`
	Offset float64 `json:"offset"`
	Width  float64 `json:"width"`
}

// Layout carries the pixel geometry of the grid.
type Layout struct {
	// ColumnWidth is the pixel width of one resolution step.
	ColumnWidth float64 `json:"column_width"`
	// BaseOffset shifts the whole grid, e.g. past a row-header gutter.
	BaseOffset float64 `json:"base_offset"`
	// MinEventWidth keeps zero-duration and very short events clickable.
	MinEventWidth float64 `json:"min_event_width"`
}

// SetDefaults applies the layout used by the reference grid widget.
func (l *Layout) SetDefaults() {
	if l.ColumnWidth == 0 {
		l.ColumnWidth = 60
	}
	if l.MinEventWidth == 0 {
		l.MinEventWidth = 8
	}
}

// Calculator positions events for one display mode. Construction fails fast
// on a nonsensical hour window; positioning itself never errors.
type Calculator struct {
	mode   model.GridMode
	layout Layout
}

// NewCalculator validates the mode eagerly and returns a Calculator.
func NewCalculator(mode model.GridMode, layout Layout) (Calculator, error) {
	if err := mode.Validate(); err != nil {
		return Calculator{}, fmt.Errorf("invalid grid mode: %w", err)
	}
	layout.SetDefaults()
	return Calculator{mode: mode, layout: layout}, nil
}

// Mode returns the hour window the calculator was built for.
func (c Calculator) Mode() model.GridMode { return c.mode }

// Position maps the event's time range onto grid coordinates for the given
// target date. Spans bleeding in from an earlier day start at the window's
// left edge; spans running past the target date end at the right edge.
// Out-of-window anchors are clamped to the nearest boundary, never dropped;
// the renderer decides whether to suppress them.
func (c Calculator) Position(e model.ScheduleEvent, date time.Time) Coordinate {
	var startHour, endHour float64
	if e.IsSpan() {
		startHour = c.spanEdgeHour(e.StartTime, date, true)
		endHour = c.spanEdgeHour(e.EndTime, date, false)
	} else {
		startHour = hourFraction(e.Anchor())
		endHour = startHour
	}

	startPx := c.clampPx(c.toPx(startHour))
	endPx := c.clampPx(c.toPx(endHour))

	width := endPx - startPx
	if math.IsNaN(width) || math.IsInf(width, 0) || width < c.layout.MinEventWidth {
		width = c.layout.MinEventWidth
	}

	col, offset := c.split(startPx)
	return Coordinate{Column: col, Offset: offset, Width: width}
}

// spanEdgeHour resolves one edge of a span to an hour fraction on the target
// date, snapping edges that fall on other days to the window boundary.
func (c Calculator) spanEdgeHour(t, date time.Time, isStart bool) float64 {
	if model.SameDay(t, date) {
		return hourFraction(t)
	}
	if isStart {
		if t.Before(startOfDay(date)) {
			return float64(c.mode.StartHour)
		}
		return float64(c.mode.EndHour)
	}
	// An end edge landing exactly on the next midnight still runs past the
	// whole target day, so it belongs to the right boundary.
	if !t.Before(startOfDay(date).Add(24 * time.Hour)) {
		return float64(c.mode.EndHour)
	}
	return float64(c.mode.StartHour)
}

func (c Calculator) toPx(hour float64) float64 {
	perHour := c.layout.ColumnWidth / float64(c.mode.ResolutionHours)
	return c.layout.BaseOffset + (hour-float64(c.mode.StartHour))*perHour
}

func (c Calculator) clampPx(px float64) float64 {
	lo := c.layout.BaseOffset
	hi := c.layout.BaseOffset + float64(c.mode.VisibleHours())/float64(c.mode.ResolutionHours)*c.layout.ColumnWidth
	if math.IsNaN(px) || px < lo {
		return lo
	}
	if px > hi {
		return hi
	}
	return px
}

// split converts an absolute pixel position into a column index plus the
// offset inside that column. The right boundary folds into the last column.
func (c Calculator) split(px float64) (int, float64) {
	rel := px - c.layout.BaseOffset
	col := int(rel / c.layout.ColumnWidth)
	maxCol := c.mode.VisibleHours()/c.mode.ResolutionHours - 1
	if col > maxCol {
		col = maxCol
	}
	if col < 0 {
		col = 0
	}
	return col, rel - float64(col)*c.layout.ColumnWidth
}

func hourFraction(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
