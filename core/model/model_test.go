package model

import (
	"testing"
	"time"
)

func TestEventTypeString(t *testing.T) {
	cases := map[EventType]string{
		EventPickup:      "Pickup",
		EventDelivery:    "Delivery",
		EventInTransit:   "In Transit",
		EventBreak:       "Break",
		EventMaintenance: "Maintenance",
		EventType(99):    "unknown",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Fatalf("%d: expected %q got %q", typ, want, got)
		}
	}
}

func TestAnchorSpanVsPoint(t *testing.T) {
	at := time.Date(2025, 7, 2, 8, 0, 0, 0, time.Local)
	point := ScheduleEvent{Type: EventPickup, Time: at}
	if point.IsSpan() {
		t.Fatalf("point event reported as span")
	}
	if !point.Anchor().Equal(at) {
		t.Fatalf("point anchor mismatch")
	}
	span := ScheduleEvent{
		Type:      EventInTransit,
		StartTime: at,
		EndTime:   at.Add(6 * time.Hour),
	}
	if !span.IsSpan() {
		t.Fatalf("span event not detected")
	}
	if !span.Anchor().Equal(at) {
		t.Fatalf("span anchor should be start time")
	}
}

func TestInActiveTransit(t *testing.T) {
	for _, s := range []string{"In Transit", "in transit", "EN ROUTE", " in_transit "} {
		if !(LoadRecord{Status: s}).InActiveTransit() {
			t.Fatalf("%q should be active transit", s)
		}
	}
	for _, s := range []string{"Assigned", "Delivered", ""} {
		if (LoadRecord{Status: s}).InActiveTransit() {
			t.Fatalf("%q should not be active transit", s)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	for _, s := range []string{"Completed", "DELIVERED", "paid"} {
		if !IsTerminalStatus(s) {
			t.Fatalf("%q should be terminal", s)
		}
	}
	if IsTerminalStatus("In Transit") {
		t.Fatalf("in transit is not terminal")
	}
}

func TestParseDisplayMode(t *testing.T) {
	m, err := ParseDisplayMode("24h")
	if err != nil || m != TwentyFourHour {
		t.Fatalf("24h parse failed: %v %v", m, err)
	}
	if _, err := ParseDisplayMode("8h"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestGridModeValidate(t *testing.T) {
	if err := (GridMode{ResolutionHours: 1, StartHour: 7, EndHour: 19}).Validate(); err != nil {
		t.Fatalf("valid mode rejected: %v", err)
	}
	bad := []GridMode{
		{ResolutionHours: 1, StartHour: 19, EndHour: 7},
		{ResolutionHours: 1, StartHour: 8, EndHour: 8},
		{ResolutionHours: 0, StartHour: 0, EndHour: 24},
		{ResolutionHours: 1, StartHour: -1, EndHour: 12},
	}
	for _, g := range bad {
		if err := g.Validate(); err == nil {
			t.Fatalf("expected error for %+v", g)
		}
	}
}
