package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/mgubran1/dispatchgrid/infra/logger"
)

// InfluxSink writes schedule summaries to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg Config) SummarySink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return NopSink{}
	}
	return sink
}

// RecordSummary writes the summary as one point per event type plus a totals
// point.
func (s *InfluxSink) RecordSummary(rec SummaryRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	day := rec.Date.Format("2006-01-02")
	for typ, n := range rec.Summary.CountsByType {
		p := write.NewPointWithMeasurement("schedule_events").
			AddTag("date", day).
			AddTag("event_type", typ.String()).
			AddField("count", n).
			SetTime(rec.BuiltAt)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	totals := write.NewPointWithMeasurement("schedule_summary").
		AddTag("date", day).
		AddField("total_events", rec.Summary.TotalEvents).
		AddField("active_drivers", rec.Summary.ActiveDriverCount).
		AddField("completion_rate", rec.Summary.CompletionRate).
		AddField("mean_events_per_driver", rec.Summary.MeanEventsPerDriver).
		AddField("build_seconds", rec.BuildTime.Seconds()).
		SetTime(rec.BuiltAt)
	return s.writeAPI.WritePoint(ctx, totals)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
