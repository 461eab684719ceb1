package metrics

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAssignment forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordAssignment(rec AssignmentRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordAssignment(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordRelease forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRelease(rec ReleaseRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordRelease(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordConflict forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordConflict(rec ConflictRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordConflict(rec); err != nil {
			return err
		}
	}
	return nil
}
