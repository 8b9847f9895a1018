// Package repository provides the load/driver store consumed by the schedule
// engine. The engine itself never performs I/O; the host fetches assignment
// records here and hands them to the builder.
package repository

import (
	"context"
	"time"

	"github.com/mgubran1/dispatchgrid/core/model"
)

// Repository returns driver assignment records whose load windows touch the
// given date range. A load overlaps the range when its pickup date is not
// after `to` and its delivery date is not before `from`, so interior transit
// days are included.
type Repository interface {
	DriversWithLoads(ctx context.Context, from, to time.Time) ([]model.DriverWithLoads, error)
	Close() error
}

// Writer is implemented by repositories that accept new records. The service
// only reads; seeding tools and tests write.
type Writer interface {
	PutDriver(ctx context.Context, driverName, vehicleID string) error
	PutLoad(ctx context.Context, driverName string, load model.LoadRecord) error
	PutDriverEvent(ctx context.Context, driverName string, ev model.DriverEvent) error
}

// overlaps reports whether the load's date window touches [from, to].
// Loads missing both dates never overlap; a single known date is used for
// both bounds.
func overlaps(l model.LoadRecord, from, to time.Time) bool {
	first, last := l.PickupDate, l.DeliveryDate
	if first.IsZero() {
		first = last
	}
	if last.IsZero() {
		last = first
	}
	if first.IsZero() {
		return false
	}
	return !dateOnly(first).After(dateOnly(to)) && !dateOnly(last).Before(dateOnly(from))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
