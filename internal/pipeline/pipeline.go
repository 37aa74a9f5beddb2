package pipeline

import (
	"math"

	"github.com/shopspring/decimal"

	"TickerScope/internal/calculator"
	"TickerScope/internal/model"
)

const (
	smaShortWindow = 50
	smaLongWindow  = 200
	highWindow     = 252 // trading days in 52 weeks

	// Rolling arithmetic runs in float64; computed indicators are rounded to
	// this many decimal places when converted back at the output boundary.
	outputPlaces = 6
)

// Result is the pipeline output: the derived daily metrics plus every
// per-row diagnostic collected along the way.
type Result struct {
	Metrics  []model.DailyMetric
	Warnings []Warning
}

// Run executes the full merge-and-derive pipeline for one security:
// validate bars, carry fundamentals forward onto the daily calendar, compute
// rolling indicators and ratios, and convert to the decimal output
// representation. It is a pure function of its inputs: no I/O, no shared
// state, safe to invoke concurrently for different securities.
//
// Empty validated price input yields an empty (non-error) result. If the
// output conversion would drop every row while valid price data existed, the
// metrics are recomputed from price data alone: fundamental-derived fields
// stay nil and an unrepresentable indicator leaves its field nil instead of
// dropping the row.
func Run(ticker string, bars []model.PriceBar, fundamentals []model.Fundamental) Result {
	valid, warnings := ValidateBars(bars)
	if len(valid) == 0 {
		return Result{Warnings: warnings}
	}

	rows := MergeTimeline(valid, fundamentals)

	metrics, convWarnings := computeMetrics(ticker, rows, false)
	warnings = append(warnings, convWarnings...)

	if len(metrics) == 0 && len(rows) > 0 {
		// The strict pass already reported every drop; the fallback pass
		// walks the same rows again, so its warnings are duplicates.
		metrics, _ = computeMetrics(ticker, rows, true)
	}

	return Result{Metrics: metrics, Warnings: warnings}
}

// computeMetrics derives one DailyMetric per row. With priceOnly set, the
// fundamental snapshot is ignored and the derived ratio fields stay nil.
func computeMetrics(ticker string, rows []model.DailyRow, priceOnly bool) ([]model.DailyMetric, []Warning) {
	var warnings []Warning

	closes := make([]float64, len(rows))
	for i, r := range rows {
		closes[i] = r.Bar.Close.InexactFloat64()
	}

	sma50, err := calculator.RollingMean(closes, smaShortWindow)
	if err != nil {
		return nil, append(warnings, Warning{Rule: RuleConversion, Message: err.Error()})
	}
	sma200, err := calculator.RollingMean(closes, smaLongWindow)
	if err != nil {
		return nil, append(warnings, Warning{Rule: RuleConversion, Message: err.Error()})
	}
	high52w, err := calculator.RollingMax(closes, highWindow)
	if err != nil {
		return nil, append(warnings, Warning{Rule: RuleConversion, Message: err.Error()})
	}

	metrics := make([]model.DailyMetric, 0, len(rows))
	for i, row := range rows {
		if row.Bar.Date.IsZero() {
			warnings = append(warnings, Warning{Rule: RuleMissingDate, Message: "row has no date, dropped"})
			continue
		}

		m := model.DailyMetric{
			Date:   row.Bar.Date,
			Ticker: ticker,
			Close:  row.Bar.Close,
		}

		var failed string
		set := func(dst **decimal.Decimal, f float64, field string) {
			if d, ok := toDecimal(f); ok {
				*dst = d
			} else if failed == "" {
				failed = field
			}
		}
		set(&m.SMA50, sma50[i], "sma_50")
		set(&m.SMA200, sma200[i], "sma_200")
		set(&m.High52w, high52w[i], "high_52w")
		if pct, defined := calculator.PctFromHigh(closes[i], high52w[i]); defined {
			set(&m.PctFromHigh52w, pct, "pct_from_high_52w")
		}

		// A row with an unrepresentable indicator is dropped; the price-only
		// fallback pass instead keeps the row with the failed indicator nil,
		// so valid price history always yields output.
		if failed != "" && !priceOnly {
			warnings = append(warnings, conversionWarning(row, failed))
			continue
		}

		if !priceOnly && row.Fundamental != nil {
			f := row.Fundamental
			if f.BookValue != nil {
				bv := *f.BookValue
				m.BookValuePerShare = &bv
				if !bv.IsZero() {
					pb := row.Bar.Close.Div(bv)
					m.PriceToBook = &pb
				}
			}
			if f.EnterpriseValue != nil {
				ev := *f.EnterpriseValue
				m.EnterpriseValue = &ev
			}
		}

		metrics = append(metrics, m)
	}
	return metrics, warnings
}

func conversionWarning(row model.DailyRow, field string) Warning {
	return Warning{
		Date:    row.Bar.Date,
		Rule:    RuleConversion,
		Message: field + " is not representable, row dropped",
	}
}

// toDecimal converts an internal float64 to the decimal output
// representation. Non-finite values are not representable.
func toDecimal(f float64) (*decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	d := decimal.NewFromFloat(f).Round(outputPlaces)
	return &d, true
}
