// Package exporter serializes an analysis document to JSON or CSV. Field
// naming and layout are owned here; the pipeline only guarantees field sets
// and ordering.
package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"TickerScope/internal/model"
)

// Format selects the output serialization. The set is closed: anything other
// than json or csv is rejected.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a user-supplied format selector.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use json or csv)", s)
	}
}

// Write serializes the export document to path in the given format. JSON
// carries the full document; CSV carries the daily metrics table only.
func Write(path string, format Format, doc *model.Export) error {
	switch format {
	case FormatJSON:
		return WriteJSON(path, doc)
	case FormatCSV:
		return WriteCSV(path, doc.DailyMetrics)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

type jsonPriceBar struct {
	Date   string          `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

type jsonFundamental struct {
	AsOf             string           `json:"as_of"`
	Ticker           string           `json:"ticker"`
	BookValue        *decimal.Decimal `json:"book_value"`
	TotalAssets      *decimal.Decimal `json:"total_assets"`
	TotalLiabilities *decimal.Decimal `json:"total_liabilities"`
	PERatio          *decimal.Decimal `json:"pe_ratio"`
	PBRatio          *decimal.Decimal `json:"pb_ratio"`
	EPS              *decimal.Decimal `json:"eps"`
	Revenue          *decimal.Decimal `json:"revenue"`
	NetIncome        *decimal.Decimal `json:"net_income"`
	EnterpriseValue  *decimal.Decimal `json:"enterprise_value"`
	Source           string           `json:"source"`
}

type jsonDailyMetric struct {
	Date              string           `json:"date"`
	Ticker            string           `json:"ticker"`
	Close             decimal.Decimal  `json:"close"`
	SMA50             *decimal.Decimal `json:"sma_50"`
	SMA200            *decimal.Decimal `json:"sma_200"`
	High52w           *decimal.Decimal `json:"high_52w"`
	PctFromHigh52w    *decimal.Decimal `json:"pct_from_high_52w"`
	BookValuePerShare *decimal.Decimal `json:"book_value_per_share"`
	PriceToBook       *decimal.Decimal `json:"price_to_book"`
	EnterpriseValue   *decimal.Decimal `json:"enterprise_value"`
}

type jsonSignalEvent struct {
	Date       string `json:"date"`
	Ticker     string `json:"ticker"`
	SignalType string `json:"signal_type"`
}

type jsonExport struct {
	Ticker       string            `json:"ticker"`
	RunID        string            `json:"run_id"`
	GeneratedAt  string            `json:"generated_at"`
	PriceData    []jsonPriceBar    `json:"price_data"`
	Fundamentals []jsonFundamental `json:"fundamentals"`
	DailyMetrics []jsonDailyMetric `json:"daily_metrics"`
	Signals      []jsonSignalEvent `json:"signals"`
}

// WriteJSON writes the full export document: raw inputs, derived metrics,
// and detected signals.
func WriteJSON(path string, doc *model.Export) error {
	out := jsonExport{
		Ticker:       doc.Ticker,
		RunID:        doc.RunID,
		GeneratedAt:  doc.GeneratedAt.UTC().Format(time.RFC3339),
		PriceData:    make([]jsonPriceBar, 0, len(doc.PriceData)),
		Fundamentals: make([]jsonFundamental, 0, len(doc.Fundamentals)),
		DailyMetrics: make([]jsonDailyMetric, 0, len(doc.DailyMetrics)),
		Signals:      make([]jsonSignalEvent, 0, len(doc.Signals)),
	}
	for _, b := range doc.PriceData {
		out.PriceData = append(out.PriceData, jsonPriceBar{
			Date: b.DateKey(), Open: b.Open, High: b.High,
			Low: b.Low, Close: b.Close, Volume: b.Volume,
		})
	}
	for _, f := range doc.Fundamentals {
		out.Fundamentals = append(out.Fundamentals, jsonFundamental{
			AsOf:             f.AsOf.Format(model.DateFormat),
			Ticker:           f.Ticker,
			BookValue:        f.BookValue,
			TotalAssets:      f.TotalAssets,
			TotalLiabilities: f.TotalLiabilities,
			PERatio:          f.PERatio,
			PBRatio:          f.PBRatio,
			EPS:              f.EPS,
			Revenue:          f.Revenue,
			NetIncome:        f.NetIncome,
			EnterpriseValue:  f.EnterpriseValue,
			Source:           string(f.Source),
		})
	}
	for _, m := range doc.DailyMetrics {
		out.DailyMetrics = append(out.DailyMetrics, jsonDailyMetric{
			Date:              m.DateKey(),
			Ticker:            m.Ticker,
			Close:             m.Close,
			SMA50:             m.SMA50,
			SMA200:            m.SMA200,
			High52w:           m.High52w,
			PctFromHigh52w:    m.PctFromHigh52w,
			BookValuePerShare: m.BookValuePerShare,
			PriceToBook:       m.PriceToBook,
			EnterpriseValue:   m.EnterpriseValue,
		})
	}
	for _, e := range doc.Signals {
		out.Signals = append(out.Signals, jsonSignalEvent{
			Date:       e.Date.Format(model.DateFormat),
			Ticker:     e.Ticker,
			SignalType: string(e.Type),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

var csvHeader = []string{
	"date", "ticker", "close", "sma_50", "sma_200", "high_52w",
	"pct_from_high_52w", "book_value_per_share", "price_to_book",
	"enterprise_value",
}

// WriteCSV writes the daily metrics as a flat table, one row per trading
// day, empty cells for absent values.
func WriteCSV(path string, metrics []model.DailyMetric) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, m := range metrics {
		row := []string{
			m.DateKey(), m.Ticker, m.Close.String(),
			cell(m.SMA50), cell(m.SMA200), cell(m.High52w),
			cell(m.PctFromHigh52w), cell(m.BookValuePerShare),
			cell(m.PriceToBook), cell(m.EnterpriseValue),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", m.DateKey(), err)
		}
	}
	w.Flush()
	return w.Error()
}

func cell(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
