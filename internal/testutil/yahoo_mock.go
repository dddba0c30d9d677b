package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined test data instead of making actual API calls.
// Responses can be configured per symbol; unconfigured symbols fall back to
// the default response.
type MockYahooClient struct {
	// MockResponse is the response returned for symbols without an override.
	MockResponse yahoo.Response
	// ResponsesBySymbol overrides the response for specific symbols.
	ResponsesBySymbol map[string]yahoo.Response
	// ErrorsBySymbol makes specific symbols fail while others succeed.
	ErrorsBySymbol map[string]error
	// MockError is the error returned for every symbol when set.
	MockError error
	// QueryCount tracks how many times a query method was called. Fetch
	// batches query symbols concurrently, hence the atomic.
	QueryCount atomic.Int64
}

// NewMockYahooClient creates a new mock Yahoo client with default test data.
// The default data includes 5 days of historical prices and a dividend event
// on the middle day.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		MockResponse:      CreateMockYahooResponse("TEST", 5),
		ResponsesBySymbol: make(map[string]yahoo.Response),
		ErrorsBySymbol:    make(map[string]error),
	}
}

// QueryYahooMaxSymbol mocks the full-history query with predefined test data.
func (m *MockYahooClient) QueryYahooMaxSymbol(_ context.Context, symbol string) (yahoo.Response, error) {
	m.QueryCount.Add(1)
	if m.MockError != nil {
		return yahoo.Response{}, m.MockError
	}
	if err, ok := m.ErrorsBySymbol[symbol]; ok {
		return yahoo.Response{}, err
	}
	if resp, ok := m.ResponsesBySymbol[symbol]; ok {
		return resp, nil
	}
	return m.MockResponse, nil
}

// ParseChart delegates to the real ParseChart method since it's pure logic with no side effects.
func (m *MockYahooClient) ParseChart(yahooResult yahoo.Response) (yahoo.PriceChart, error) {
	// Use the real implementation for parsing since it's deterministic
	client := yahoo.NewFinanceClient("")
	return client.ParseChart(yahooResult)
}

// WithError configures the mock to fail every symbol with the specified error.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.MockError = err
	return m
}

// WithSymbolResponse configures the mock response for one symbol.
func (m *MockYahooClient) WithSymbolResponse(symbol string, resp yahoo.Response) *MockYahooClient {
	m.ResponsesBySymbol[symbol] = resp
	return m
}

// WithSymbolError makes one symbol fail while the others keep succeeding.
func (m *MockYahooClient) WithSymbolError(symbol string, err error) *MockYahooClient {
	m.ErrorsBySymbol[symbol] = err
	return m
}

// CreateMockYahooResponse creates a mock Yahoo Finance API response with test
// data for the given symbol. The response includes `days` trading days of
// price data ending yesterday, plus one dividend event on the middle day.
func CreateMockYahooResponse(symbol string, days int) yahoo.Response {
	now := time.Now().UTC()
	yesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, time.UTC)

	timestamps := make([]int64, days)
	opens := make([]*float64, days)
	highs := make([]*float64, days)
	lows := make([]*float64, days)
	closes := make([]*float64, days)
	volumes := make([]*int64, days)

	// Generate realistic price data for testing
	basePrice := 100.0
	for i := 0; i < days; i++ {
		date := yesterday.AddDate(0, 0, -days+i+1)
		timestamps[i] = date.Unix()

		// Simulate price movement
		dayPrice := basePrice + float64(i)*0.5
		open := dayPrice
		high := dayPrice + 1.0
		low := dayPrice - 0.5
		closePrice := dayPrice + 0.25
		volume := int64(1000000 + i*10000)

		opens[i] = &open
		highs[i] = &high
		lows[i] = &low
		closes[i] = &closePrice
		volumes[i] = &volume
	}

	dividends := map[string]yahoo.DividendEvent{}
	if days > 0 {
		midDay := timestamps[days/2]
		dividends[fmt.Sprintf("%d", midDay)] = yahoo.DividendEvent{
			Amount: 0.25,
			Date:   midDay,
		}
	}

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:           symbol,
						Currency:         "USD",
						ExchangeName:     "PCX",
						FullExchangeName: "NYSEArca",
						LongName:         symbol + " Option Income Strategy ETF",
						Shortname:        symbol,
					},
					Timestamp: timestamps,
					Indicators: yahoo.IndicatorsContainer{
						Quote: []yahoo.Quote{
							{
								Open:   opens,
								High:   highs,
								Low:    lows,
								Close:  closes,
								Volume: volumes,
							},
						},
					},
					Events: yahoo.Events{
						Dividends: dividends,
					},
				},
			},
			Error: nil,
		},
	}
}

// CreateMockYahooResponseWithDividends creates a mock response whose price
// history covers exactly the given days, with dividend events on the days
// where amounts is non-zero. Days and amounts line up by index; a zero
// amount means a trading day with no recorded distribution.
func CreateMockYahooResponseWithDividends(symbol string, days []time.Time, amounts []float64) yahoo.Response {
	timestamps := make([]int64, len(days))
	closes := make([]*float64, len(days))
	opens := make([]*float64, len(days))
	highs := make([]*float64, len(days))
	lows := make([]*float64, len(days))
	volumes := make([]*int64, len(days))
	dividends := map[string]yahoo.DividendEvent{}

	for i, day := range days {
		day = day.UTC()
		timestamps[i] = day.Unix()
		price := 20.0 + float64(i)*0.1
		volume := int64(500000)
		closes[i] = &price
		opens[i] = &price
		highs[i] = &price
		lows[i] = &price
		volumes[i] = &volume

		if amounts[i] != 0 {
			dividends[fmt.Sprintf("%d", day.Unix())] = yahoo.DividendEvent{
				Amount: amounts[i],
				Date:   day.Unix(),
			}
		}
	}

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:   symbol,
						Currency: "USD",
					},
					Timestamp: timestamps,
					Indicators: yahoo.IndicatorsContainer{
						Quote: []yahoo.Quote{
							{
								Open:   opens,
								High:   highs,
								Low:    lows,
								Close:  closes,
								Volume: volumes,
							},
						},
					},
					Events: yahoo.Events{
						Dividends: dividends,
					},
				},
			},
			Error: nil,
		},
	}
}

// CreateMockYahooErrorResponse creates a mock Yahoo response with an error.
// Useful for testing error handling scenarios.
func CreateMockYahooErrorResponse(errorMsg string) yahoo.Response {
	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{},
			Error:  &errorMsg,
		},
	}
}
