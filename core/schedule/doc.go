package schedule

// Package schedule turns load/driver assignment records into the discrete
// events shown on a day's dispatch timeline and provides filtering, ordering
// and summary aggregation over the resulting event list. All functions are
// pure: no I/O, no shared state, fresh output slices on every call.
