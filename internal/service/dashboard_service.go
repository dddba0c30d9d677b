package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/model"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/repository"
)

// Chart titles and layout metadata handed to the frontend verbatim.
const (
	priceChartTitle    = "YieldMax Fund Values Since Inception"
	dividendChartTitle = "Dividends Over Time"
)

// defaultRangeStart is the date-range lower bound served before any data has
// been fetched.
var defaultRangeStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// DashboardService derives the dashboard views from a session's cached
// market data: the resolved date range, the price chart, the pivoted
// dividend table, and the dividend bar chart.
type DashboardService struct {
	priceRepo    *repository.PriceRepository
	dividendRepo *repository.DividendRepository
}

// NewDashboardService creates a DashboardService with the provided
// repository dependencies.
func NewDashboardService(
	priceRepo *repository.PriceRepository,
	dividendRepo *repository.DividendRepository,
) *DashboardService {
	return &DashboardService{
		priceRepo:    priceRepo,
		dividendRepo: dividendRepo,
	}
}

// ResolveDateRange derives the selectable date bounds for a session.
//
// With cached dividend data the bounds are the min and max dividend dates
// across all cached tickers. An empty cache yields exactly
// (2000-01-01, today). The empty-union guard lives in the repository's
// three-value bounds lookup.
func (s *DashboardService) ResolveDateRange(session model.Session) (time.Time, time.Time, error) {
	minDate, maxDate, ok, err := s.dividendRepo.GetDateBounds(session.ID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !ok {
		return defaultRangeStart, toCalendarDay(time.Now()), nil
	}
	return minDate, maxDate, nil
}

// BuildPriceChart assembles one line trace per cached ticker over its full
// fetched history.
//
// Traces follow the session's selection order and are never clipped by the
// dividend date filter; that asymmetry with the dividend views is
// intentional and load-bearing for the "since inception" framing.
func (s *DashboardService) BuildPriceChart(session model.Session) (model.PriceChart, error) {
	pricesByTicker, err := s.priceRepo.GetBySession(session.ID)
	if err != nil {
		return model.PriceChart{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrievePrices, err)
	}

	chart := model.PriceChart{
		Title:      priceChartTitle,
		XAxisTitle: "Date",
		YAxisTitle: "Value ($)",
		Traces:     []model.PriceTrace{},
	}

	for _, ticker := range session.Tickers {
		points, ok := pricesByTicker[ticker]
		if !ok {
			// Failed or empty symbol: no trace, consistent with an absent
			// entry in the fetch result.
			continue
		}

		trace := model.PriceTrace{
			Name:   ticker,
			Mode:   "lines",
			Dates:  make([]string, len(points)),
			Closes: make([]float64, len(points)),
		}
		for i, p := range points {
			trace.Dates[i] = p.Date.Format("2006-01-02")
			trace.Closes[i] = p.Close
		}
		chart.Traces = append(chart.Traces, trace)
	}

	return chart, nil
}

// BuildDividendTable unions the session's cached dividend rows, filters them
// to [startDate, endDate] inclusive, and pivots them into a ticker-by-date
// matrix.
//
// Columns are dropped when every value is zero, every value is one, or every
// value is missing. The all-ones rule filters a known placeholder artifact
// in the source feed and is applied literally; a column keeping at least one
// other value survives even if some tickers show zero that day. A column
// mixing zeros with missing values also survives: a missing value compares
// unequal to zero.
//
// Tickers and dates are both sorted ascending in the result.
func (s *DashboardService) BuildDividendTable(session model.Session, startDate, endDate time.Time) (model.PivotedDividendTable, error) {
	rowsByTicker, err := s.dividendRepo.GetBySession(session.ID, startDate, endDate)
	if err != nil {
		return model.PivotedDividendTable{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveDividends, err)
	}

	tickers := make([]string, 0, len(rowsByTicker))
	for ticker := range rowsByTicker {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	dateSet := make(map[string]struct{})
	for _, rows := range rowsByTicker {
		for _, row := range rows {
			dateSet[row.Date.Format("2006-01-02")] = struct{}{}
		}
	}
	dates := make([]string, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	dateIndex := make(map[string]int, len(dates))
	for i, date := range dates {
		dateIndex[date] = i
	}

	// Pivot: one amount slice per ticker, nil where the ticker has no row.
	matrix := make([][]*decimal.Decimal, len(tickers))
	for i, ticker := range tickers {
		matrix[i] = make([]*decimal.Decimal, len(dates))
		for _, row := range rowsByTicker[ticker] {
			amount := row.Amount
			matrix[i][dateIndex[row.Date.Format("2006-01-02")]] = &amount
		}
	}

	one := decimal.NewFromInt(1)
	keep := make([]int, 0, len(dates))
	for c := range dates {
		present, zeros, ones := 0, 0, 0
		for r := range tickers {
			value := matrix[r][c]
			if value == nil {
				continue
			}
			present++
			if value.IsZero() {
				zeros++
			}
			if value.Equal(one) {
				ones++
			}
		}
		allMissing := present == 0
		allZero := present == len(tickers) && zeros == len(tickers)
		allOne := present == len(tickers) && ones == len(tickers)
		if allMissing || allZero || allOne {
			continue
		}
		keep = append(keep, c)
	}

	table := model.PivotedDividendTable{
		Dates: make([]string, len(keep)),
		Rows:  make([]model.PivotRow, len(tickers)),
	}
	for i, c := range keep {
		table.Dates[i] = dates[c]
	}
	for r, ticker := range tickers {
		row := model.PivotRow{
			Ticker:  ticker,
			Amounts: make([]*decimal.Decimal, len(keep)),
		}
		for i, c := range keep {
			row.Amounts[i] = matrix[r][c]
		}
		table.Rows[r] = row
	}

	return table, nil
}

// BuildDividendChart assembles grouped bar traces from a pivoted dividend
// table. Non-positive entries are excluded before charting, so zero or
// negative dividends never appear as bars. A ticker with no positive entries
// keeps an empty trace so it retains its legend entry and color slot.
func (s *DashboardService) BuildDividendChart(table model.PivotedDividendTable) model.DividendChart {
	chart := model.DividendChart{
		Title:      dividendChartTitle,
		XAxisTitle: "Date",
		YAxisTitle: "Dividends ($)",
		BarMode:    "group",
		Traces:     make([]model.BarTrace, 0, len(table.Rows)),
	}

	for _, row := range table.Rows {
		trace := model.BarTrace{
			Name:    row.Ticker,
			Dates:   []string{},
			Amounts: []decimal.Decimal{},
		}
		for i, amount := range row.Amounts {
			if amount == nil || !amount.IsPositive() {
				continue
			}
			trace.Dates = append(trace.Dates, table.Dates[i])
			trace.Amounts = append(trace.Amounts, *amount)
		}
		chart.Traces = append(chart.Traces, trace)
	}

	return chart
}
