package signal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"TickerScope/internal/model"
)

// series builds a metric sequence from parallel SMA columns; a negative value
// marks the SMA as absent for that row.
func series(sma50, sma200 []float64) []model.DailyMetric {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	metrics := make([]model.DailyMetric, len(sma50))
	for i := range sma50 {
		metrics[i] = model.DailyMetric{
			Date:   start.AddDate(0, 0, i),
			Ticker: "TEST",
			Close:  decimal.NewFromInt(1),
		}
		if sma50[i] >= 0 {
			d := decimal.NewFromFloat(sma50[i])
			metrics[i].SMA50 = &d
		}
		if sma200[i] >= 0 {
			d := decimal.NewFromFloat(sma200[i])
			metrics[i].SMA200 = &d
		}
	}
	return metrics
}

func dates(events []model.SignalEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Date.Format("2006-01-02")
	}
	return out
}

func TestGoldenCross_SingleCrossing(t *testing.T) {
	metrics := series(
		[]float64{1, 2, 3, 5, 7},
		[]float64{2, 2, 2, 2, 2},
	)
	golden := DetectGoldenCrosses(metrics)
	if len(golden) != 1 {
		t.Fatalf("expected exactly one golden cross, got %d (%v)", len(golden), dates(golden))
	}
	// Index 3 is where sma_50 first exceeds sma_200 (5 > 2, previous 3 <= 2).
	if !golden[0].Date.Equal(metrics[3].Date) {
		t.Errorf("golden cross at %s, want %s", golden[0].Date, metrics[3].Date)
	}
	if golden[0].Type != model.SignalGoldenCross {
		t.Errorf("event type = %s, want golden_cross", golden[0].Type)
	}
	if death := DetectDeathCrosses(metrics); len(death) != 0 {
		t.Errorf("expected no death crosses, got %v", dates(death))
	}
}

func TestCrossovers_MultipleReported(t *testing.T) {
	metrics := series(
		[]float64{1, 2, 3, 4, 5, 4, 3, 4, 5, 6},
		[]float64{2, 2, 2, 2, 2, 3, 4, 3, 2, 1},
	)
	golden := DetectGoldenCrosses(metrics)
	death := DetectDeathCrosses(metrics)
	if len(golden) != 2 {
		t.Errorf("expected 2 golden crosses, got %d (%v)", len(golden), dates(golden))
	}
	if len(death) != 1 {
		t.Errorf("expected 1 death cross, got %d (%v)", len(death), dates(death))
	}
}

func TestCrossovers_NoCrossing(t *testing.T) {
	metrics := series(
		[]float64{1, 1, 1, 1, 1},
		[]float64{2, 2, 2, 2, 2},
	)
	if g := DetectGoldenCrosses(metrics); len(g) != 0 {
		t.Errorf("expected no golden crosses, got %v", dates(g))
	}
	if d := DetectDeathCrosses(metrics); len(d) != 0 {
		t.Errorf("expected no death crosses, got %v", dates(d))
	}
}

func TestCrossovers_EqualityThenRise(t *testing.T) {
	// Sitting exactly at equality then rising triggers; staying at equality
	// does not.
	rising := series([]float64{2, 3}, []float64{2, 2})
	if g := DetectGoldenCrosses(rising); len(g) != 1 {
		t.Errorf("equality-then-rise: expected 1 golden cross, got %v", dates(g))
	}
	flat := series([]float64{2, 2, 2}, []float64{2, 2, 2})
	if g := DetectGoldenCrosses(flat); len(g) != 0 {
		t.Errorf("equality-held: expected no golden crosses, got %v", dates(g))
	}
}

func TestCrossovers_NilRowsSkippedWithoutGapEffect(t *testing.T) {
	// Row 1 has no SMA200 and row 2 no SMA50; the scan compares row 0
	// directly against row 3.
	metrics := series(
		[]float64{1, 1, -1, 5},
		[]float64{2, -1, 2, 2},
	)
	golden := DetectGoldenCrosses(metrics)
	if len(golden) != 1 {
		t.Fatalf("expected 1 golden cross across the gap, got %d (%v)", len(golden), dates(golden))
	}
	if !golden[0].Date.Equal(metrics[3].Date) {
		t.Errorf("golden cross at %s, want %s", golden[0].Date, metrics[3].Date)
	}
}

func TestCrossovers_FewerThanTwoValidRows(t *testing.T) {
	metrics := series(
		[]float64{1, -1, -1},
		[]float64{2, -1, -1},
	)
	if g := DetectGoldenCrosses(metrics); len(g) != 0 {
		t.Errorf("expected no golden crosses, got %v", dates(g))
	}
	if d := DetectDeathCrosses(metrics); len(d) != 0 {
		t.Errorf("expected no death crosses, got %v", dates(d))
	}
	if g := DetectGoldenCrosses(nil); len(g) != 0 {
		t.Errorf("expected no events on empty input, got %v", dates(g))
	}
}

func TestCrossovers_MutuallyExclusivePerTransition(t *testing.T) {
	metrics := series(
		[]float64{1, 3, 1, 3, 1},
		[]float64{2, 2, 2, 2, 2},
	)
	golden := DetectGoldenCrosses(metrics)
	death := DetectDeathCrosses(metrics)
	seen := map[string]model.SignalType{}
	for _, e := range golden {
		seen[e.Date.Format("2006-01-02")] = e.Type
	}
	for _, e := range death {
		if _, dup := seen[e.Date.Format("2006-01-02")]; dup {
			t.Errorf("date %s fired both golden and death", e.Date.Format("2006-01-02"))
		}
	}
	if len(golden) != 2 || len(death) != 2 {
		t.Errorf("expected 2 golden and 2 death, got %d and %d", len(golden), len(death))
	}
}
