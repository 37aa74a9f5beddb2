package model

import "time"

// Export is the full analysis document handed to the export shell: raw inputs,
// derived metrics, and detected signals for one run over one security.
type Export struct {
	Ticker       string
	RunID        string
	GeneratedAt  time.Time
	PriceData    []PriceBar
	Fundamentals []Fundamental
	DailyMetrics []DailyMetric
	Signals      []SignalEvent
}
