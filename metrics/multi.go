package metrics

// MultiSink fans out summary records to multiple sinks.
type MultiSink struct {
	Sinks []SummarySink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...SummarySink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSummary forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordSummary(rec SummaryRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordSummary(rec); err != nil {
			return err
		}
	}
	return nil
}
