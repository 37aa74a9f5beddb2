package recorder

import "TickerScope/internal/model"

// Recorder persists analysis output. Implementations must be idempotent on
// natural keys (ticker+date for metrics, ticker+date+signal type for events)
// so repeated runs over overlapping date ranges never duplicate rows.
type Recorder interface {
	SaveTicker(ticker, name string) error
	SaveDailyMetrics(metrics []model.DailyMetric) error
	SaveSignalEvents(events []model.SignalEvent) error
	Close() error
}
