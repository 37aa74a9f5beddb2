package pipeline

import (
	"sort"

	"TickerScope/internal/model"
)

// MergeTimeline aligns irregular fundamental disclosures onto the daily price
// calendar. For each price date the effective snapshot is the last fundamental
// with AsOf on or before that date (last-observation-carried-forward), or nil
// when none precedes it. The association is by date, never positional: output
// length always equals the number of price bars regardless of how many
// fundamentals exist.
func MergeTimeline(bars []model.PriceBar, fundamentals []model.Fundamental) []model.DailyRow {
	sorted := make([]model.PriceBar, len(bars))
	copy(sorted, bars)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	funds := make([]model.Fundamental, len(fundamentals))
	copy(funds, fundamentals)
	sort.Slice(funds, func(i, j int) bool { return funds[i].AsOf.Before(funds[j].AsOf) })

	rows := make([]model.DailyRow, 0, len(sorted))
	fi := 0
	var current *model.Fundamental
	for _, bar := range sorted {
		for fi < len(funds) && !funds[fi].AsOf.After(bar.Date) {
			current = &funds[fi]
			fi++
		}
		rows = append(rows, model.DailyRow{Bar: bar, Fundamental: current})
	}
	return rows
}
