package collector

import (
	"time"

	"github.com/shopspring/decimal"

	"TickerScope/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price        float64
	Bars         []model.PriceBar
	Fundamentals []model.Fundamental
	Err          error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_, _ string) ([]model.PriceBar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return generateMockBars(m.Price, 300), nil
}

func (m *MockFetcher) FetchFundamentals(_ string) ([]model.Fundamental, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Fundamentals, nil
}

func generateMockBars(basePrice float64, count int) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Date:   time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -(count - i)),
			Open:   decimal.NewFromFloat(p * 0.999),
			High:   decimal.NewFromFloat(p * 1.005),
			Low:    decimal.NewFromFloat(p * 0.995),
			Close:  decimal.NewFromFloat(p),
			Volume: 1000000,
		}
	}
	return bars
}
