package recorder

import "TickerScope/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) SaveTicker(_, _ string) error                 { return nil }
func (n *NoopRecorder) SaveDailyMetrics(_ []model.DailyMetric) error { return nil }
func (n *NoopRecorder) SaveSignalEvents(_ []model.SignalEvent) error { return nil }
func (n *NoopRecorder) Close() error                                 { return nil }
