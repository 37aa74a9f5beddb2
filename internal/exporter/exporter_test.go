package exporter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"TickerScope/internal/model"
)

func sampleExport() *model.Export {
	day := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bv := decimal.RequireFromString("10")
	pb := decimal.RequireFromString("1.2")
	return &model.Export{
		Ticker:      "TEST",
		RunID:       "run-1",
		GeneratedAt: time.Date(2023, 1, 3, 12, 0, 0, 0, time.UTC),
		PriceData: []model.PriceBar{{
			Date:   day,
			Open:   decimal.RequireFromString("11"),
			High:   decimal.RequireFromString("13"),
			Low:    decimal.RequireFromString("10"),
			Close:  decimal.RequireFromString("12"),
			Volume: 1100,
		}},
		Fundamentals: []model.Fundamental{{
			AsOf:      day.AddDate(0, 0, -2),
			Ticker:    "TEST",
			BookValue: &bv,
			Source:    model.SourceQuarterly,
		}},
		DailyMetrics: []model.DailyMetric{{
			Date:              day,
			Ticker:            "TEST",
			Close:             decimal.RequireFromString("12"),
			BookValuePerShare: &bv,
			PriceToBook:       &pb,
		}},
		Signals: []model.SignalEvent{{
			Date: day, Ticker: "TEST", Type: model.SignalGoldenCross,
		}},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	f, err = ParseFormat("csv")
	require.NoError(t, err)
	require.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestWriteJSON_FieldSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, sampleExport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, "TEST", doc["ticker"])

	metrics := doc["daily_metrics"].([]interface{})
	require.Len(t, metrics, 1)
	row := metrics[0].(map[string]interface{})
	require.Equal(t, "2023-01-02", row["date"])
	require.Nil(t, row["sma_50"])
	require.Equal(t, "1.2", row["price_to_book"])

	signals := doc["signals"].([]interface{})
	require.Len(t, signals, 1)
	require.Equal(t, "golden_cross", signals[0].(map[string]interface{})["signal_type"])
}

func TestWriteCSV_EmptyCellsForNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, sampleExport().DailyMetrics))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, csvHeader, rows[0])

	row := rows[1]
	require.Equal(t, "2023-01-02", row[0])
	require.Equal(t, "12", row[2])
	require.Equal(t, "", row[3]) // sma_50 absent
	require.Equal(t, "1.2", row[8])
}
