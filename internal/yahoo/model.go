package yahoo

import (
	"time"

	"github.com/shopspring/decimal"
)

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API. This type maps directly to the Yahoo response format, containing
// nested structures for metadata, timestamps, price indicators and corporate
// events.
//
// The structure includes:
//   - Chart.Result: Array of result objects (typically contains one element)
//   - Chart.Result[].Meta: Symbol metadata (name, currency, exchange)
//   - Chart.Result[].Timestamp: Unix timestamps for each data point
//   - Chart.Result[].Indicators: Price data arrays (open, close, high, low, volume)
//   - Chart.Result[].Events: Dividend events keyed by event timestamp
//   - Chart.Error: Optional error message from the Yahoo API
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart is the top-level container of a Yahoo chart response.
type Chart struct {
	Result []Result `json:"result"`
	Error  *string  `json:"error"`
}

// Result holds one symbol's chart data.
type Result struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
	Events     Events              `json:"events"`
}

// Meta holds symbol metadata returned alongside the chart.
type Meta struct {
	Currency         string `json:"currency"`
	Symbol           string `json:"symbol"`
	ExchangeName     string `json:"exchangeName"`
	FullExchangeName string `json:"fullExchangeName"`
	LongName         string `json:"longName"`
	Shortname        string `json:"shortName"`
}

// IndicatorsContainer wraps the quote arrays of a chart result.
type IndicatorsContainer struct {
	Quote []Quote `json:"quote"`
}

// Quote holds the per-day OHLCV arrays. Yahoo reports null for days without
// a trade, hence the pointer element types.
type Quote struct {
	Open   []*float64 `json:"open"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
}

// Events holds corporate events returned when the query includes events=div.
// The dividends map is keyed by the event's Unix timestamp rendered as a
// string; the key duplicates the Date field and is ignored during parsing.
type Events struct {
	Dividends map[string]DividendEvent `json:"dividends"`
}

// DividendEvent is a single cash distribution reported by Yahoo.
type DividendEvent struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}

// PriceChart represents a parsed and structured price chart from Yahoo
// Finance. This is the application's internal representation after parsing
// the raw Response.
//
// The chart contains:
//   - Symbol metadata: ticker, name, exchange, and currency information
//   - Indicators: a time-series array of daily price data points
//   - Dividends: dated cash distributions, ordered by date ascending
type PriceChart struct {
	Currency         string       `json:"currency"`
	Symbol           string       `json:"symbol"`
	ExchangeName     string       `json:"exchangeName"`
	FullExchangeName string       `json:"fullExchangeName"`
	LongName         string       `json:"longName"`
	Shortname        string       `json:"shortName"`
	Indicators       []Indicators `json:"indicators"`
	Dividends        []Dividend   `json:"dividends"`
}

// Indicators represents a single day's price data for a financial instrument.
// Each Indicators instance corresponds to one trading day and contains the
// standard OHLCV (Open, High, Low, Close, Volume) data.
type Indicators struct {
	Date       time.Time
	PriceOpen  float64
	PriceClose float64
	Volume     int64
	PriceHigh  float64
	PriceLow   float64
}

// Dividend represents a single parsed dividend event. The date is normalized
// to midnight UTC so events align with the daily price index.
type Dividend struct {
	Date   time.Time
	Amount decimal.Decimal
}
