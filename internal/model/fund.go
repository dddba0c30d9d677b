package model

// FundListing is the registry payload served to the UI: the full ticker
// lineup plus the tickers pre-selected in the fund picker.
type FundListing struct {
	Tickers          []string `json:"tickers"`
	DefaultSelection []string `json:"defaultSelection"`
}
