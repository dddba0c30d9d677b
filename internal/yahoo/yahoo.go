package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the production Yahoo Finance chart API endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client is the interface used by services to query Yahoo Finance.
// Production code uses FinanceClient; tests substitute a mock.
type Client interface {
	QueryYahooMaxSymbol(ctx context.Context, symbol string) (Response, error)
	ParseChart(yahooResult Response) (PriceChart, error)
}

// FinanceClient provides methods for fetching financial data from the Yahoo
// Finance API. It wraps an HTTP client and provides convenient methods for
// querying full-history price and dividend data.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP
// settings. An empty baseURL selects the production Yahoo endpoint; tests can
// point the client at an httptest server instead.
//
// Returns:
//   - *FinanceClient: A new client instance ready for use
func NewFinanceClient(baseURL string) *FinanceClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &FinanceClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
	}
}

// QueryYahooMaxSymbol fetches a symbol's full daily price history from
// inception, including dividend events. This is the dashboard's only query
// shape: the UI always plots funds since inception and derives the dividend
// table from the same response.
//
// The method uses Yahoo Finance's range-based query format (range=max) with
// events=div so that price history and distributions arrive in one call.
//
// Parameters:
//   - ctx: Context for cancellation control
//   - symbol: Fund ticker symbol (e.g., "TSLY", "YMAX")
//
// Returns:
//   - Response: Raw API response containing price data and dividend events
//   - error: If the HTTP request fails, the API returns an error, or no results found
func (c *FinanceClient) QueryYahooMaxSymbol(ctx context.Context, symbol string) (Response, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=max&events=div", c.baseURL, symbol)
	result, err := c.queryYahoo(ctx, url)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

// ParseChart converts a raw Yahoo Finance API response into a structured
// price chart. This method extracts price data (open, close, high, low,
// volume), dividend events, and metadata (symbol, currency, exchange) from
// the Yahoo response format.
//
// The method performs validation to ensure:
//   - Timestamp data is present
//   - Close price data is present
//   - Data arrays have matching lengths
//
// Days where Yahoo reports a null close (no trade) are skipped. Dividend
// event dates are truncated to midnight UTC and sorted ascending so they can
// be joined against the daily price index.
//
// Parameters:
//   - yahooResult: Raw response from the Yahoo Finance API
//
// Returns:
//   - PriceChart: Structured chart with indicators, dividends and metadata
//   - error: If data is missing, malformed, or arrays have mismatched lengths
func (c *FinanceClient) ParseChart(yahooResult Response) (PriceChart, error) {

	result := yahooResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}

	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, 0, len(result.Timestamp))
	for i, v := range result.Timestamp {
		if quote.Close[i] == nil {
			continue
		}
		ind := Indicators{
			Date:       time.Unix(v, 0).UTC(),
			PriceClose: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			ind.PriceOpen = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			ind.PriceHigh = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			ind.PriceLow = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			ind.Volume = *quote.Volume[i]
		}
		indicators = append(indicators, ind)
	}

	dividends := make([]Dividend, 0, len(result.Events.Dividends))
	for _, ev := range result.Events.Dividends {
		dividends = append(dividends, Dividend{
			Date:   time.Unix(ev.Date, 0).UTC().Truncate(24 * time.Hour),
			Amount: decimal.NewFromFloat(ev.Amount),
		})
	}
	sort.Slice(dividends, func(i, j int) bool {
		return dividends[i].Date.Before(dividends[j].Date)
	})

	return PriceChart{
		Symbol:           result.Meta.Symbol,
		Currency:         result.Meta.Currency,
		ExchangeName:     result.Meta.ExchangeName,
		FullExchangeName: result.Meta.FullExchangeName,
		LongName:         result.Meta.LongName,
		Shortname:        result.Meta.Shortname,
		Indicators:       indicators,
		Dividends:        dividends,
	}, nil
}

// queryYahoo is an internal helper that executes HTTP requests to the Yahoo
// Finance API. This method handles the common logic for making requests,
// reading responses, parsing JSON, and checking for API errors.
//
// The method sets required headers:
//   - User-Agent: Mimics a browser to avoid API blocking
//   - Accept: Requests JSON response format
//
// Parameters:
//   - ctx: Context for cancellation control
//   - url: Fully-formed Yahoo Finance API URL
//
// Returns:
//   - Response: Parsed API response
//   - error: If the HTTP request fails, response parsing fails, or the Yahoo API returns an error
func (c *FinanceClient) queryYahoo(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}
