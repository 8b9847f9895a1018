package metrics

import (
	"time"

	"github.com/mgubran1/dispatchgrid/core/schedule"
)

// Config defines settings for the summary metric sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SummaryRecord is one schedule rebuild outcome to be recorded.
type SummaryRecord struct {
	Date      time.Time
	Summary   schedule.Summary
	BuiltAt   time.Time
	BuildTime time.Duration
}

// SummarySink records schedule summaries for observability purposes.
type SummarySink interface {
	RecordSummary(rec SummaryRecord) error
}

// NopSink implements SummarySink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSummary(SummaryRecord) error { return nil }
