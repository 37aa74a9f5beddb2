package model

import "time"

// SignalType identifies a crossover event kind.
type SignalType string

const (
	SignalGoldenCross SignalType = "golden_cross"
	SignalDeathCross  SignalType = "death_cross"
)

// SignalEvent is a dated crossover occurrence. Events are a pure function of
// the DailyMetric sequence and are emitted in ascending date order.
type SignalEvent struct {
	Date   time.Time
	Ticker string
	Type   SignalType
}
