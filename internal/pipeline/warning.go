package pipeline

import (
	"fmt"
	"time"
)

// Validation and conversion rule identifiers, used to name the violated
// constraint in diagnostics.
const (
	RuleHighBelowLow    = "high_below_low"
	RuleOpenOutOfRange  = "open_out_of_range"
	RuleCloseOutOfRange = "close_out_of_range"
	RuleNegativeVolume  = "negative_volume"
	RuleMissingDate     = "missing_date"
	RuleConversion      = "conversion"
)

// Warning is a structured per-row diagnostic. The pipeline collects warnings
// instead of writing to process-wide logging; the caller decides how to
// surface them.
type Warning struct {
	Date    time.Time
	Rule    string
	Message string
}

func (w Warning) String() string {
	if w.Date.IsZero() {
		return fmt.Sprintf("%s: %s", w.Rule, w.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", w.Rule, w.Date.Format("2006-01-02"), w.Message)
}
