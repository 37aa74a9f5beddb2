// Package signal scans derived metric series for moving-average crossover
// events.
package signal

import (
	"github.com/shopspring/decimal"

	"TickerScope/internal/model"
)

// DetectGoldenCrosses returns every date where the 50-day SMA crosses above
// the 200-day SMA: the previous valid row had SMA50 <= SMA200 and the current
// row has SMA50 > SMA200. Rows where either SMA is nil are excluded from the
// scan entirely; consecutive valid rows are compared, not consecutive
// positions. Fewer than two valid rows yields no events.
func DetectGoldenCrosses(metrics []model.DailyMetric) []model.SignalEvent {
	return scan(metrics, model.SignalGoldenCross, func(prev50, prev200, cur50, cur200 decimal.Decimal) bool {
		return prev50.LessThanOrEqual(prev200) && cur50.GreaterThan(cur200)
	})
}

// DetectDeathCrosses is the symmetric scan: the previous valid row had
// SMA50 >= SMA200 and the current row has SMA50 < SMA200.
func DetectDeathCrosses(metrics []model.DailyMetric) []model.SignalEvent {
	return scan(metrics, model.SignalDeathCross, func(prev50, prev200, cur50, cur200 decimal.Decimal) bool {
		return prev50.GreaterThanOrEqual(prev200) && cur50.LessThan(cur200)
	})
}

func scan(metrics []model.DailyMetric, kind model.SignalType, crossed func(prev50, prev200, cur50, cur200 decimal.Decimal) bool) []model.SignalEvent {
	events := []model.SignalEvent{}

	var prev *model.DailyMetric
	for i := range metrics {
		m := &metrics[i]
		if m.SMA50 == nil || m.SMA200 == nil {
			continue
		}
		if prev != nil && crossed(*prev.SMA50, *prev.SMA200, *m.SMA50, *m.SMA200) {
			events = append(events, model.SignalEvent{
				Date:   m.Date,
				Ticker: m.Ticker,
				Type:   kind,
			})
		}
		prev = m
	}
	return events
}
