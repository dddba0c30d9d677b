package model

// FetchResult summarizes a fetch batch. Failures are per symbol: a failed
// ticker is listed in Failed and contributes no cached rows, while the rest
// of the batch completes normally.
type FetchResult struct {
	Fetched []string `json:"fetched"`
	Failed  []string `json:"failed"`
}
