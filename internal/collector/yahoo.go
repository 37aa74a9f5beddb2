package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"TickerScope/internal/model"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	Client  *http.Client
	BaseURL string
	// Now supplies the capture timestamp for the info-tier fundamental
	// snapshot, which has no as-of date of its own.
	Now func() time.Time
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: defaultBaseURL,
		Now:     time.Now,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooValue is Yahoo's wrapped numeric: {"raw": 1234.5, "fmt": "1.23k"}.
type yahooValue struct {
	Raw *float64 `json:"raw"`
}

type yahooBalanceSheet struct {
	EndDate                yahooValue `json:"endDate"`
	TotalStockholderEquity yahooValue `json:"totalStockholderEquity"`
	TotalAssets            yahooValue `json:"totalAssets"`
	TotalLiab              yahooValue `json:"totalLiab"`
}

type yahooQuoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			BalanceSheetHistoryQuarterly *struct {
				BalanceSheetStatements []yahooBalanceSheet `json:"balanceSheetStatements"`
			} `json:"balanceSheetHistoryQuarterly"`
			BalanceSheetHistory *struct {
				BalanceSheetStatements []yahooBalanceSheet `json:"balanceSheetStatements"`
			} `json:"balanceSheetHistory"`
			DefaultKeyStatistics *struct {
				BookValue         yahooValue `json:"bookValue"`
				TrailingEps       yahooValue `json:"trailingEps"`
				PriceToBook       yahooValue `json:"priceToBook"`
				EnterpriseValue   yahooValue `json:"enterpriseValue"`
				NetIncomeToCommon yahooValue `json:"netIncomeToCommon"`
			} `json:"defaultKeyStatistics"`
			SummaryDetail *struct {
				TrailingPE yahooValue `json:"trailingPE"`
			} `json:"summaryDetail"`
			FinancialData *struct {
				TotalRevenue yahooValue `json:"totalRevenue"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (f *YahooFetcher) get(u string, out interface{}) error {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

// FetchDailyBars fetches daily OHLCV bars for the given range (e.g. "5y").
// Null bars (holidays) are skipped; bars are returned ascending by date.
func (f *YahooFetcher) FetchDailyBars(ticker, period string) ([]model.PriceBar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.BaseURL, url.PathEscape(ticker), url.QueryEscape(period))

	var chart yahooChart
	if err := f.get(u, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data returned")
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.PriceBar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o, h, l, c := deref(quote.Open, i), deref(quote.High, i), deref(quote.Low, i), deref(quote.Close, i)
		if o == nil || h == nil || l == nil || c == nil {
			continue // skip null bars (holidays etc.)
		}
		var volume int64
		if v := deref(quote.Volume, i); v != nil {
			volume = int64(*v)
		}
		day := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
		bars = append(bars, model.PriceBar{
			Date:   day,
			Open:   decimal.NewFromFloat(*o),
			High:   decimal.NewFromFloat(*h),
			Low:    decimal.NewFromFloat(*l),
			Close:  decimal.NewFromFloat(*c),
			Volume: volume,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// FetchFundamentals tries disclosure tiers in order: quarterly balance
// sheets, then annual, then a single snapshot from the summary statistics
// stamped with the fetch time. Observations are returned ascending by as-of
// date; an empty list is not an error.
func (f *YahooFetcher) FetchFundamentals(ticker string) ([]model.Fundamental, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		f.BaseURL, url.PathEscape(ticker),
		"balanceSheetHistoryQuarterly,balanceSheetHistory,defaultKeyStatistics,summaryDetail,financialData")

	var summary yahooQuoteSummary
	if err := f.get(u, &summary); err != nil {
		return nil, err
	}
	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		logrus.WithField("ticker", ticker).Info("no fundamental data available")
		return nil, nil
	}
	result := summary.QuoteSummary.Result[0]

	if result.BalanceSheetHistoryQuarterly != nil {
		if funds := balanceSheets(ticker, result.BalanceSheetHistoryQuarterly.BalanceSheetStatements, model.SourceQuarterly); len(funds) > 0 {
			return funds, nil
		}
	}
	if result.BalanceSheetHistory != nil {
		if funds := balanceSheets(ticker, result.BalanceSheetHistory.BalanceSheetStatements, model.SourceAnnual); len(funds) > 0 {
			return funds, nil
		}
	}

	// Last tier: synthesize one snapshot from the summary statistics if any
	// field is present at all.
	snap := model.Fundamental{
		AsOf:   f.Now().UTC().Truncate(24 * time.Hour),
		Ticker: ticker,
		Source: model.SourceInfo,
	}
	present := false
	if ks := result.DefaultKeyStatistics; ks != nil {
		present = setDecimal(&snap.BookValue, ks.BookValue) || present
		present = setDecimal(&snap.EPS, ks.TrailingEps) || present
		present = setDecimal(&snap.PBRatio, ks.PriceToBook) || present
		present = setDecimal(&snap.EnterpriseValue, ks.EnterpriseValue) || present
		present = setDecimal(&snap.NetIncome, ks.NetIncomeToCommon) || present
	}
	if sd := result.SummaryDetail; sd != nil {
		present = setDecimal(&snap.PERatio, sd.TrailingPE) || present
	}
	if fd := result.FinancialData; fd != nil {
		present = setDecimal(&snap.Revenue, fd.TotalRevenue) || present
	}
	if !present {
		logrus.WithField("ticker", ticker).Info("no fundamental data available")
		return nil, nil
	}
	return []model.Fundamental{snap}, nil
}

func balanceSheets(ticker string, statements []yahooBalanceSheet, source model.FundamentalSource) []model.Fundamental {
	funds := make([]model.Fundamental, 0, len(statements))
	for _, bs := range statements {
		if bs.EndDate.Raw == nil {
			continue
		}
		f := model.Fundamental{
			AsOf:   time.Unix(int64(*bs.EndDate.Raw), 0).UTC().Truncate(24 * time.Hour),
			Ticker: ticker,
			Source: source,
		}
		setDecimal(&f.BookValue, bs.TotalStockholderEquity)
		setDecimal(&f.TotalAssets, bs.TotalAssets)
		setDecimal(&f.TotalLiabilities, bs.TotalLiab)
		funds = append(funds, f)
	}
	sort.Slice(funds, func(i, j int) bool { return funds[i].AsOf.Before(funds[j].AsOf) })
	return funds
}

func setDecimal(dst **decimal.Decimal, v yahooValue) bool {
	if v.Raw == nil {
		return false
	}
	d := decimal.NewFromFloat(*v.Raw)
	*dst = &d
	return true
}

func deref(vals []*float64, i int) *float64 {
	if i >= len(vals) {
		return nil
	}
	return vals[i]
}
