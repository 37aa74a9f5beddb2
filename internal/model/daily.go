package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRow is one fused timeline entry: the day's price bar plus the most
// recent fundamental disclosure with AsOf on or before that day, or nil when
// no disclosure precedes it. Rows are never mutated after the merge.
type DailyRow struct {
	Bar         PriceBar
	Fundamental *Fundamental
}

// DailyMetric is the final per-day output row: close price plus rolling
// technical indicators and point-in-time fundamental ratios. Optional fields
// are nil when the underlying data is unavailable.
type DailyMetric struct {
	Date              time.Time
	Ticker            string
	Close             decimal.Decimal
	SMA50             *decimal.Decimal
	SMA200            *decimal.Decimal
	High52w           *decimal.Decimal
	PctFromHigh52w    *decimal.Decimal
	BookValuePerShare *decimal.Decimal
	PriceToBook       *decimal.Decimal
	EnterpriseValue   *decimal.Decimal
}

// DateKey returns the metric's date formatted as YYYY-MM-DD.
func (m DailyMetric) DateKey() string {
	return m.Date.Format(DateFormat)
}
