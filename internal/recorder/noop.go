package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordCrashPrediction(_ *CrashPredictionEvent) error   { return nil }
func (n *NoopRecorder) RecordRouletteForecast(_ *RouletteForecastEvent) error { return nil }
func (n *NoopRecorder) RecordSimulation(_ *SimulationEvent) error             { return nil }
func (n *NoopRecorder) Close() error                                          { return nil }
