package collector

import "TickerScope/internal/model"

// Fetcher defines the interface for fetching raw market data for one
// security. Implementations return ascending price history and whatever
// fundamental disclosures the source can provide; either collection may be
// empty.
type Fetcher interface {
	FetchDailyBars(ticker, period string) ([]model.PriceBar, error)
	FetchFundamentals(ticker string) ([]model.Fundamental, error)
	Name() string
}
