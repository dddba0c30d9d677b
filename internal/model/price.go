package model

import "time"

// PricePoint is one day's closing price for a fund, cached for a session.
// Dates are midnight UTC; the series spans the fund's full trading history.
type PricePoint struct {
	ID        string
	SessionID string
	Ticker    string
	Date      time.Time
	Close     float64
}
