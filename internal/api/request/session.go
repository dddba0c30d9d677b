package request

// FetchRequest triggers a market-data fetch for a session. An empty or
// omitted ticker list falls back to the registry's default selection.
type FetchRequest struct {
	Tickers []string `json:"tickers"`
}
