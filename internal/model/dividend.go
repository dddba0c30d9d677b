package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DividendRow is one day's dividend amount for a fund, cached for a session.
//
// The fetch service emits one row per trading day in the fund's price
// history: days with no recorded distribution carry an amount of exactly
// zero, never a missing row. Dates are normalized to midnight UTC so rows
// from different tickers can be unioned and pivoted safely.
type DividendRow struct {
	ID        string
	SessionID string
	Ticker    string
	Date      time.Time
	Amount    decimal.Decimal
}
