package model

import "fmt"

// DisplayMode selects the visible hour range of the timeline grid.
// Only the two enumerated modes are permitted.
type DisplayMode int

const (
	TwelveHour DisplayMode = iota
	TwentyFourHour
)

// GridMode carries the resolution and visible hour window used to position
// events on the grid.
type GridMode struct {
	ResolutionHours int `json:"resolution_hours"`
	StartHour       int `json:"start_hour"`
	EndHour         int `json:"end_hour"`
}

// Grid returns the hour window for the display mode.
func (m DisplayMode) Grid() GridMode {
	switch m {
	case TwentyFourHour:
		return GridMode{ResolutionHours: 1, StartHour: 0, EndHour: 24}
	default:
		return GridMode{ResolutionHours: 1, StartHour: 7, EndHour: 19}
	}
}

// String returns the configuration token for the mode.
func (m DisplayMode) String() string {
	if m == TwentyFourHour {
		return "24h"
	}
	return "12h"
}

// ParseDisplayMode maps a configuration token to a DisplayMode.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch s {
	case "12h":
		return TwelveHour, nil
	case "24h":
		return TwentyFourHour, nil
	default:
		return TwelveHour, fmt.Errorf("unknown display mode %q", s)
	}
}

// Validate rejects hour windows that cannot produce sensible coordinates.
func (g GridMode) Validate() error {
	if g.ResolutionHours <= 0 {
		return fmt.Errorf("resolution must be positive, got %d", g.ResolutionHours)
	}
	if g.EndHour <= g.StartHour {
		return fmt.Errorf("end hour %d must be after start hour %d", g.EndHour, g.StartHour)
	}
	if g.StartHour < 0 || g.EndHour > 24 {
		return fmt.Errorf("hour window [%d,%d] outside day bounds", g.StartHour, g.EndHour)
	}
	return nil
}

// VisibleHours returns the number of hours shown by the window.
func (g GridMode) VisibleHours() int {
	return g.EndHour - g.StartHour
}
