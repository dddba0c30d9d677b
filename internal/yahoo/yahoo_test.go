package yahoo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func float64Ptr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64       { return &v }

func makeResponse(timestamps []int64, closes []*float64, dividends map[string]DividendEvent) Response {
	opens := make([]*float64, len(closes))
	highs := make([]*float64, len(closes))
	lows := make([]*float64, len(closes))
	volumes := make([]*int64, len(closes))
	for i, c := range closes {
		if c == nil {
			continue
		}
		opens[i] = float64Ptr(*c - 0.1)
		highs[i] = float64Ptr(*c + 0.2)
		lows[i] = float64Ptr(*c - 0.3)
		volumes[i] = int64Ptr(100000)
	}

	return Response{
		Chart: Chart{
			Result: []Result{
				{
					Meta: Meta{
						Symbol:   "TSLY",
						Currency: "USD",
					},
					Timestamp: timestamps,
					Indicators: IndicatorsContainer{
						Quote: []Quote{
							{Open: opens, Close: closes, High: highs, Low: lows, Volume: volumes},
						},
					},
					Events: Events{Dividends: dividends},
				},
			},
		},
	}
}

func TestParseChart(t *testing.T) {
	client := NewFinanceClient("")

	day1 := time.Date(2023, 1, 2, 14, 30, 0, 0, time.UTC)
	day2 := time.Date(2023, 1, 3, 14, 30, 0, 0, time.UTC)
	day3 := time.Date(2023, 1, 4, 14, 30, 0, 0, time.UTC)

	t.Run("parses prices and dividends", func(t *testing.T) {
		resp := makeResponse(
			[]int64{day1.Unix(), day2.Unix(), day3.Unix()},
			[]*float64{float64Ptr(17.5), float64Ptr(17.8), float64Ptr(18.1)},
			map[string]DividendEvent{
				fmt.Sprintf("%d", day3.Unix()): {Amount: 0.81, Date: day3.Unix()},
				fmt.Sprintf("%d", day1.Unix()): {Amount: 0.75, Date: day1.Unix()},
			},
		)

		chart, err := client.ParseChart(resp)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if chart.Symbol != "TSLY" {
			t.Errorf("Expected symbol TSLY, got %s", chart.Symbol)
		}
		if len(chart.Indicators) != 3 {
			t.Fatalf("Expected 3 indicators, got %d", len(chart.Indicators))
		}
		if chart.Indicators[1].PriceClose != 17.8 {
			t.Errorf("Expected close 17.8, got %f", chart.Indicators[1].PriceClose)
		}

		if len(chart.Dividends) != 2 {
			t.Fatalf("Expected 2 dividends, got %d", len(chart.Dividends))
		}
		// Events arrive as a map; parsing must sort them ascending.
		if !chart.Dividends[0].Date.Before(chart.Dividends[1].Date) {
			t.Error("Expected dividends sorted ascending by date")
		}
		if !chart.Dividends[0].Amount.Equal(decimal.NewFromFloat(0.75)) {
			t.Errorf("Expected first dividend 0.75, got %s", chart.Dividends[0].Amount)
		}
	})

	t.Run("normalizes dividend dates to midnight UTC", func(t *testing.T) {
		resp := makeResponse(
			[]int64{day1.Unix()},
			[]*float64{float64Ptr(17.5)},
			map[string]DividendEvent{
				fmt.Sprintf("%d", day1.Unix()): {Amount: 0.5, Date: day1.Unix()},
			},
		)

		chart, err := client.ParseChart(resp)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		got := chart.Dividends[0].Date
		if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
			t.Errorf("Expected midnight, got %v", got)
		}
		if got.Location() != time.UTC {
			t.Errorf("Expected UTC, got %v", got.Location())
		}
	})

	t.Run("skips days with null close", func(t *testing.T) {
		resp := makeResponse(
			[]int64{day1.Unix(), day2.Unix(), day3.Unix()},
			[]*float64{float64Ptr(17.5), nil, float64Ptr(18.1)},
			nil,
		)

		chart, err := client.ParseChart(resp)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(chart.Indicators) != 2 {
			t.Errorf("Expected null-close day skipped, got %d indicators", len(chart.Indicators))
		}
	})

	t.Run("rejects missing timestamps", func(t *testing.T) {
		resp := makeResponse(nil, nil, nil)

		if _, err := client.ParseChart(resp); err == nil {
			t.Error("Expected error for missing timestamps")
		}
	})

	t.Run("rejects missing close prices", func(t *testing.T) {
		resp := makeResponse([]int64{day1.Unix()}, nil, nil)
		resp.Chart.Result[0].Indicators.Quote = []Quote{}

		if _, err := client.ParseChart(resp); err == nil {
			t.Error("Expected error for missing close prices")
		}
	})

	t.Run("rejects mismatched data lengths", func(t *testing.T) {
		resp := makeResponse(
			[]int64{day1.Unix(), day2.Unix()},
			[]*float64{float64Ptr(17.5)},
			nil,
		)

		if _, err := client.ParseChart(resp); err == nil {
			t.Error("Expected error for mismatched lengths")
		}
	})
}

func TestQueryYahooMaxSymbol(t *testing.T) {
	day := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("queries full history with dividend events", func(t *testing.T) {
		var gotPath, gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			resp := makeResponse(
				[]int64{day.Unix()},
				[]*float64{float64Ptr(17.5)},
				nil,
			)
			//nolint:errcheck // test server
			json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client := NewFinanceClient(server.URL)

		resp, err := client.QueryYahooMaxSymbol(t.Context(), "TSLY")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if gotPath != "/v8/finance/chart/TSLY" {
			t.Errorf("Expected chart path for TSLY, got %s", gotPath)
		}
		for _, param := range []string{"interval=1d", "range=max", "events=div"} {
			if !strings.Contains(gotQuery, param) {
				t.Errorf("Expected query to contain %s, got %s", param, gotQuery)
			}
		}
		if len(resp.Chart.Result) != 1 {
			t.Errorf("Expected 1 result, got %d", len(resp.Chart.Result))
		}
	})

	t.Run("surfaces yahoo API errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			//nolint:errcheck // test server
			w.Write([]byte(`{"chart":{"result":[],"error":"No data found, symbol may be delisted"}}`))
		}))
		defer server.Close()

		client := NewFinanceClient(server.URL)

		if _, err := client.QueryYahooMaxSymbol(t.Context(), "BOGUS"); err == nil {
			t.Error("Expected error from yahoo error field")
		}
	})

	t.Run("rejects empty result set", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			//nolint:errcheck // test server
			w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
		}))
		defer server.Close()

		client := NewFinanceClient(server.URL)

		if _, err := client.QueryYahooMaxSymbol(t.Context(), "TSLY"); err == nil {
			t.Error("Expected error for empty result set")
		}
	})
}
