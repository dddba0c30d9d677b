package model

import "github.com/shopspring/decimal"

// PriceTrace is one fund's line series on the price chart: a name plus
// parallel date/close arrays over the fund's full fetched history.
type PriceTrace struct {
	Name   string    `json:"name"`
	Mode   string    `json:"mode"`
	Dates  []string  `json:"x"`
	Closes []float64 `json:"y"`
}

// PriceChart is the payload behind the "Fund Values Since Inception" view.
// Traces cover each fund's full history; the dividend date filter never
// clips them.
type PriceChart struct {
	Title      string       `json:"title"`
	XAxisTitle string       `json:"xaxisTitle"`
	YAxisTitle string       `json:"yaxisTitle"`
	Traces     []PriceTrace `json:"traces"`
}

// BarTrace is one fund's grouped-bar series on the dividend chart. Entries
// with a non-positive amount are excluded before the trace is built; a fund
// with no positive amounts in range still appears with empty arrays so it
// keeps its legend entry.
type BarTrace struct {
	Name    string            `json:"name"`
	Dates   []string          `json:"x"`
	Amounts []decimal.Decimal `json:"y"`
}

// DividendChart is the payload behind the "Dividends Over Time" view.
type DividendChart struct {
	Title      string     `json:"title"`
	XAxisTitle string     `json:"xaxisTitle"`
	YAxisTitle string     `json:"yaxisTitle"`
	BarMode    string     `json:"barmode"`
	Traces     []BarTrace `json:"traces"`
}

// PivotRow is one ticker's row in the pivoted dividend table. Amounts line
// up with the table's Dates; nil marks a date where the ticker has no row
// (the ticker's history does not cover that date).
type PivotRow struct {
	Ticker  string             `json:"ticker"`
	Amounts []*decimal.Decimal `json:"amounts"`
}

// PivotedDividendTable is the ticker-by-date dividend matrix, filtered to the
// requested date range. Columns whose values are uniformly zero, uniformly
// one, or entirely absent have already been dropped.
type PivotedDividendTable struct {
	Dates []string   `json:"dates"`
	Rows  []PivotRow `json:"rows"`
}
