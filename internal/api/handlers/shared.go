package handlers

// noDataResponse is the static fallback served by dashboard endpoints before
// any data has been fetched for the session.
type noDataResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// newNoDataResponse mirrors the dashboard's original placeholder text.
func newNoDataResponse() noDataResponse {
	return noDataResponse{
		Status:  "no_data",
		Message: "Click the button above to fetch and display YieldMax fund data.",
	}
}
