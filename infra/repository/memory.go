package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mgubran1/dispatchgrid/core/model"
)

// MemoryRepository keeps assignment records in memory. It backs tests, the
// simulator seed data and deployments without a database file.
type MemoryRepository struct {
	mu      sync.RWMutex
	drivers map[string]*model.DriverWithLoads
}

// NewMemoryRepository returns an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{drivers: map[string]*model.DriverWithLoads{}}
}

func (r *MemoryRepository) PutDriver(_ context.Context, driverName, vehicleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := r.driver(driverName)
	d.VehicleID = vehicleID
	return nil
}

func (r *MemoryRepository) PutLoad(_ context.Context, driverName string, load model.LoadRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := r.driver(driverName)
	d.Loads = append(d.Loads, load)
	return nil
}

func (r *MemoryRepository) PutDriverEvent(_ context.Context, driverName string, ev model.DriverEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := r.driver(driverName)
	d.Events = append(d.Events, ev)
	return nil
}

// driver returns the record for the name, creating it if needed. Callers
// hold the write lock.
func (r *MemoryRepository) driver(name string) *model.DriverWithLoads {
	d, ok := r.drivers[name]
	if !ok {
		d = &model.DriverWithLoads{DriverName: name}
		r.drivers[name] = d
	}
	return d
}

// DriversWithLoads returns a deep copy of every driver whose loads or events
// touch [from, to], sorted by driver name for deterministic output.
func (r *MemoryRepository) DriversWithLoads(_ context.Context, from, to time.Time) ([]model.DriverWithLoads, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.DriverWithLoads
	for _, d := range r.drivers {
		cp := model.DriverWithLoads{DriverName: d.DriverName, VehicleID: d.VehicleID}
		for _, l := range d.Loads {
			if overlaps(l, from, to) {
				cp.Loads = append(cp.Loads, l)
			}
		}
		for _, ev := range d.Events {
			if !ev.Date.IsZero() && !dateOnly(ev.Date).Before(dateOnly(from)) && !dateOnly(ev.Date).After(dateOnly(to)) {
				cp.Events = append(cp.Events, ev)
			}
		}
		if len(cp.Loads) > 0 || len(cp.Events) > 0 {
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DriverName < out[j].DriverName })
	return out, nil
}

func (r *MemoryRepository) Close() error { return nil }
