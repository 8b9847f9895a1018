// Package app wires the schedule engine to its collaborators: the load
// repository, the refresh listener, the metric sinks and the HTTP query API.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	apischedule "github.com/mgubran1/dispatchgrid/api/schedule"
	"github.com/mgubran1/dispatchgrid/config"
	"github.com/mgubran1/dispatchgrid/core/factory"
	"github.com/mgubran1/dispatchgrid/core/model"
	"github.com/mgubran1/dispatchgrid/core/schedule"
	"github.com/mgubran1/dispatchgrid/infra/logger"
	"github.com/mgubran1/dispatchgrid/infra/mqtt"
	"github.com/mgubran1/dispatchgrid/infra/repository"
	"github.com/mgubran1/dispatchgrid/internal/eventbus"
	"github.com/mgubran1/dispatchgrid/metrics"
)

// snapshot is one immutable build result. It is replaced wholesale on every
// rebuild; a stale in-flight build simply loses the swap (last write wins).
type snapshot struct {
	date    time.Time
	events  []model.ScheduleEvent
	builtAt time.Time
}

// Service owns the rebuild loop and serves schedule queries from the latest
// snapshot.
type Service struct {
	cfg      *config.Config
	repo     repository.Repository
	builder  schedule.Builder
	sink     metrics.SummarySink
	bus      *eventbus.Bus[mqtt.RefreshNotice]
	listener *mqtt.RefreshListener
	log      logger.Logger

	mu   sync.RWMutex
	snap snapshot
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	repo, err := repository.NewRegistry().Build(factory.BackendConfig{
		Name: cfg.Repository.Backend,
		Conf: map[string]any{"path": cfg.Repository.Path},
	})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	var sinks []metrics.SummarySink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink metrics.SummarySink = metrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	svc := &Service{
		cfg:     cfg,
		repo:    repo,
		builder: schedule.NewBuilder(cfg.Schedule),
		sink:    sink,
		bus:     eventbus.New[mqtt.RefreshNotice](),
		log:     logg,
	}
	if cfg.MQTT.Enabled {
		listener, err := mqtt.NewRefreshListener(cfg.MQTT, svc.bus)
		if err != nil {
			return nil, fmt.Errorf("refresh listener: %w", err)
		}
		svc.listener = listener
	}
	return svc, nil
}

// Schedule returns the raw event list for the date, serving the current
// snapshot when it covers the same day and building fresh otherwise.
// Concurrent calls for different dates are safe: every build works on its
// own inputs and output.
func (s *Service) Schedule(date time.Time) ([]model.ScheduleEvent, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if !snap.date.IsZero() && model.SameDay(snap.date, date) {
		return snap.events, nil
	}
	events, _, err := s.build(context.Background(), date)
	return events, err
}

// Rebuild constructs the schedule for the date, records the summary and
// swaps the snapshot.
func (s *Service) Rebuild(ctx context.Context, date time.Time) error {
	events, took, err := s.build(ctx, date)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snap = snapshot{date: date, events: events, builtAt: time.Now()}
	s.mu.Unlock()

	summary := schedule.Summarize(events)
	s.log.Debugw("schedule rebuilt", map[string]any{
		"date":    date.Format("2006-01-02"),
		"events":  summary.TotalEvents,
		"drivers": summary.ActiveDriverCount,
	})
	if err := s.sink.RecordSummary(metrics.SummaryRecord{
		Date:      date,
		Summary:   summary,
		BuiltAt:   time.Now(),
		BuildTime: took,
	}); err != nil {
		s.log.Warnf("record summary: %v", err)
	}
	return nil
}

func (s *Service) build(ctx context.Context, date time.Time) ([]model.ScheduleEvent, time.Duration, error) {
	start := time.Now()
	drivers, err := s.repo.DriversWithLoads(ctx, date, date)
	if err != nil {
		return nil, 0, fmt.Errorf("load drivers: %w", err)
	}
	return s.builder.Build(drivers, date), time.Since(start), nil
}

// Run starts the rebuild loop and the HTTP servers, blocking until the
// context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if err := s.Rebuild(ctx, time.Now()); err != nil {
		s.log.Errorf("initial build: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/schedule", apischedule.NewHandler(s, s.cfg.DisplayMode(), s.cfg.Display.Layout))
	srv := &http.Server{Addr: s.cfg.HTTP.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Errorf("http server: %v", err)
		}
	}()

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	go s.refreshLoop(ctx)
	<-ctx.Done()
	return nil
}

// refreshLoop rebuilds on the configured interval and whenever an upstream
// change notice arrives. A notice carrying a date rebuilds that day.
func (s *Service) refreshLoop(ctx context.Context) {
	interval := time.Duration(s.cfg.RefreshIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	notices := s.bus.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.rebuildCurrent(ctx)
		case notice, ok := <-notices:
			if !ok {
				return
			}
			date := s.currentDate()
			if notice.Date != "" {
				if parsed, err := time.ParseInLocation("2006-01-02", notice.Date, time.Local); err == nil {
					date = parsed
				}
			}
			if err := s.Rebuild(ctx, date); err != nil {
				s.log.Errorf("refresh rebuild: %v", err)
			}
		}
	}
}

func (s *Service) rebuildCurrent(ctx context.Context) {
	if err := s.Rebuild(ctx, s.currentDate()); err != nil {
		s.log.Errorf("scheduled rebuild: %v", err)
	}
}

func (s *Service) currentDate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap.date.IsZero() {
		return time.Now()
	}
	return s.snap.date
}

// Bus exposes the refresh bus so hosts can inject change notices directly.
func (s *Service) Bus() *eventbus.Bus[mqtt.RefreshNotice] { return s.bus }

// Repository exposes the underlying store for seeding tools.
func (s *Service) Repository() repository.Repository { return s.repo }

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.listener != nil {
		s.listener.Close()
	}
	s.bus.Close()
	return s.repo.Close()
}
