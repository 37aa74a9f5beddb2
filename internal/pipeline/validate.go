package pipeline

import (
	"fmt"

	"TickerScope/internal/model"
)

// ValidateBars checks every price bar against the structural ordering
// invariants (low <= open <= high, low <= close <= high, volume >= 0) and
// returns the bars that pass. A failing bar is dropped with a warning naming
// the violated relationship and its date; a bad day never aborts the run.
func ValidateBars(bars []model.PriceBar) ([]model.PriceBar, []Warning) {
	valid := make([]model.PriceBar, 0, len(bars))
	var warnings []Warning

	for _, b := range bars {
		if rule, msg := checkBar(b); rule != "" {
			warnings = append(warnings, Warning{Date: b.Date, Rule: rule, Message: msg})
			continue
		}
		valid = append(valid, b)
	}
	return valid, warnings
}

func checkBar(b model.PriceBar) (rule, msg string) {
	if b.High.LessThan(b.Low) {
		return RuleHighBelowLow, fmt.Sprintf("high %s is below low %s", b.High, b.Low)
	}
	if b.Open.LessThan(b.Low) || b.Open.GreaterThan(b.High) {
		return RuleOpenOutOfRange, fmt.Sprintf("open %s outside [%s, %s]", b.Open, b.Low, b.High)
	}
	if b.Close.LessThan(b.Low) || b.Close.GreaterThan(b.High) {
		return RuleCloseOutOfRange, fmt.Sprintf("close %s outside [%s, %s]", b.Close, b.Low, b.High)
	}
	if b.Volume < 0 {
		return RuleNegativeVolume, fmt.Sprintf("volume %d is negative", b.Volume)
	}
	return "", ""
}
