package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mgubran1/dispatchgrid/core/model"
)

const (
	dateFormat  = "2006-01-02"
	clockFormat = "15:04"
)

// SQLiteRepository stores drivers, loads and driver-level events in a SQLite
// database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens or creates the database at path and ensures the
// schema.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS drivers (
        name TEXT PRIMARY KEY,
        vehicle_id TEXT
    );
    CREATE TABLE IF NOT EXISTS loads (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        driver_name TEXT NOT NULL REFERENCES drivers(name),
        load_ref TEXT NOT NULL,
        pickup_date TEXT,
        pickup_time TEXT,
        delivery_date TEXT,
        delivery_time TEXT,
        origin TEXT,
        dest TEXT,
        status TEXT
    );
    CREATE TABLE IF NOT EXISTS driver_events (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        driver_name TEXT NOT NULL REFERENCES drivers(name),
        event_type INTEGER NOT NULL,
        date TEXT NOT NULL,
        start_time TEXT,
        end_time TEXT,
        location TEXT,
        notes TEXT
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) PutDriver(ctx context.Context, driverName, vehicleID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO drivers (name, vehicle_id) VALUES (?, ?)
         ON CONFLICT(name) DO UPDATE SET vehicle_id = excluded.vehicle_id`,
		driverName, vehicleID)
	return err
}

func (r *SQLiteRepository) PutLoad(ctx context.Context, driverName string, l model.LoadRecord) error {
	if err := r.ensureDriver(ctx, driverName); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO loads (driver_name, load_ref, pickup_date, pickup_time, delivery_date, delivery_time, origin, dest, status)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		driverName, l.LoadReference,
		fmtDate(l.PickupDate), fmtClock(l.PickupTime),
		fmtDate(l.DeliveryDate), fmtClock(l.DeliveryTime),
		l.OriginLocation, l.DestLocation, l.Status)
	return err
}

func (r *SQLiteRepository) PutDriverEvent(ctx context.Context, driverName string, ev model.DriverEvent) error {
	if err := r.ensureDriver(ctx, driverName); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO driver_events (driver_name, event_type, date, start_time, end_time, location, notes)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		driverName, int(ev.Type), fmtDate(ev.Date), fmtClock(ev.Start), fmtClock(ev.End), ev.Location, ev.Notes)
	return err
}

func (r *SQLiteRepository) ensureDriver(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO drivers (name, vehicle_id) VALUES (?, '') ON CONFLICT(name) DO NOTHING`, name)
	return err
}

// DriversWithLoads returns every driver with at least one load or event
// touching [from, to], ordered by driver name.
func (r *SQLiteRepository) DriversWithLoads(ctx context.Context, from, to time.Time) ([]model.DriverWithLoads, error) {
	byName := map[string]*model.DriverWithLoads{}
	var order []string

	rows, err := r.db.QueryContext(ctx,
		`SELECT d.name, d.vehicle_id, l.load_ref, l.pickup_date, l.pickup_time, l.delivery_date, l.delivery_time, l.origin, l.dest, l.status
         FROM loads l JOIN drivers d ON d.name = l.driver_name
         ORDER BY d.name, l.id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var name, vehicle, ref, pd, pt, dd, dt, origin, dest, status string
		if err := rows.Scan(&name, &vehicle, &ref, &pd, &pt, &dd, &dt, &origin, &dest, &status); err != nil {
			return nil, err
		}
		l := model.LoadRecord{
			LoadReference:  ref,
			PickupDate:     parseDate(pd),
			PickupTime:     parseClock(pt),
			DeliveryDate:   parseDate(dd),
			DeliveryTime:   parseClock(dt),
			OriginLocation: origin,
			DestLocation:   dest,
			Status:         status,
		}
		if !overlaps(l, from, to) {
			continue
		}
		d, ok := byName[name]
		if !ok {
			d = &model.DriverWithLoads{DriverName: name, VehicleID: vehicle}
			byName[name] = d
			order = append(order, name)
		}
		d.Loads = append(d.Loads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	evRows, err := r.db.QueryContext(ctx,
		`SELECT d.name, d.vehicle_id, e.event_type, e.date, e.start_time, e.end_time, e.location, e.notes
         FROM driver_events e JOIN drivers d ON d.name = e.driver_name
         WHERE e.date >= ? AND e.date <= ?
         ORDER BY d.name, e.id`,
		fmtDate(from), fmtDate(to))
	if err != nil {
		return nil, err
	}
	defer func() { _ = evRows.Close() }()
	for evRows.Next() {
		var name, vehicle, date, start, end, location, notes string
		var typ int
		if err := evRows.Scan(&name, &vehicle, &typ, &date, &start, &end, &location, &notes); err != nil {
			return nil, err
		}
		d, ok := byName[name]
		if !ok {
			d = &model.DriverWithLoads{DriverName: name, VehicleID: vehicle}
			byName[name] = d
			order = append(order, name)
		}
		d.Events = append(d.Events, model.DriverEvent{
			Type:     model.EventType(typ),
			Date:     parseDate(date),
			Start:    parseClock(start),
			End:      parseClock(end),
			Location: location,
			Notes:    notes,
		})
	}
	if err := evRows.Err(); err != nil {
		return nil, err
	}

	out := make([]model.DriverWithLoads, 0, len(order))
	for _, name := range sortedNames(order) {
		out = append(out, *byName[name])
	}
	return out, nil
}

// Close closes the underlying database.
func (r *SQLiteRepository) Close() error { return r.db.Close() }

func sortedNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

func fmtClock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(clockFormat)
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(dateFormat, s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseClock(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(clockFormat, s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
