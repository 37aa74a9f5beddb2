package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundamentalSource records which disclosure tier produced an observation.
// It is carried through for traceability only; no computation branches on it.
type FundamentalSource string

const (
	SourceQuarterly FundamentalSource = "quarterly"
	SourceAnnual    FundamentalSource = "annual"
	SourceInfo      FundamentalSource = "info"
)

// Fundamental is a single periodic disclosure snapshot. Most fields are
// optional: quarterly and annual balance sheets carry equity figures, while
// the info-tier snapshot carries summary ratios instead.
type Fundamental struct {
	AsOf             time.Time
	Ticker           string
	BookValue        *decimal.Decimal
	TotalAssets      *decimal.Decimal
	TotalLiabilities *decimal.Decimal
	PERatio          *decimal.Decimal
	PBRatio          *decimal.Decimal
	EPS              *decimal.Decimal
	Revenue          *decimal.Decimal
	NetIncome        *decimal.Decimal
	EnterpriseValue  *decimal.Decimal
	Source           FundamentalSource
}
