package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink exposes schedule summaries as Prometheus metrics.
type PromSink struct {
	events     *prometheus.GaugeVec
	drivers    prometheus.Gauge
	completion prometheus.Gauge
	rebuilds   prometheus.Counter
	buildTime  prometheus.Histogram
}

// NewPromSink registers schedule metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If a collector
// is already registered, the existing one is reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	events := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "schedule_events",
		Help: "Events on the current day's schedule by type",
	}, []string{"event_type"})
	if err := reg.Register(events); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			events = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	drivers := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_active_drivers",
		Help: "Distinct drivers with at least one event on the current schedule",
	})
	if err := reg.Register(drivers); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			drivers = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	completion := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_completion_rate",
		Help: "Fraction of events in a terminal status",
	})
	if err := reg.Register(completion); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			completion = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	rebuilds := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_rebuilds_total",
		Help: "Total number of schedule rebuilds",
	})
	if err := reg.Register(rebuilds); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			rebuilds = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}

	buildTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_build_seconds",
		Help:    "Time spent constructing the schedule",
		Buckets: prometheus.DefBuckets,
	})
	if err := reg.Register(buildTime); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			buildTime = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{events: events, drivers: drivers, completion: completion, rebuilds: rebuilds, buildTime: buildTime}, nil
}

// RecordSummary publishes the summary to the gauges.
func (s *PromSink) RecordSummary(rec SummaryRecord) error {
	s.events.Reset()
	for typ, n := range rec.Summary.CountsByType {
		s.events.WithLabelValues(typ.String()).Set(float64(n))
	}
	s.drivers.Set(float64(rec.Summary.ActiveDriverCount))
	s.completion.Set(rec.Summary.CompletionRate)
	s.rebuilds.Inc()
	s.buildTime.Observe(rec.BuildTime.Seconds())
	return nil
}
