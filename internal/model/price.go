package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the canonical day key used for persistence and export.
const DateFormat = "2006-01-02"

// PriceBar represents one daily OHLCV observation for a single security.
type PriceBar struct {
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

// DateKey returns the bar's date formatted as YYYY-MM-DD.
func (b PriceBar) DateKey() string {
	return b.Date.Format(DateFormat)
}
