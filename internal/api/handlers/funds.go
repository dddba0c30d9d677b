package handlers

import (
	"net/http"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/model"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/registry"
)

// FundHandler handles HTTP requests for the fund registry.
// The registry is static, so the handler has no service dependency.
type FundHandler struct{}

// NewFundHandler creates a new FundHandler.
func NewFundHandler() *FundHandler {
	return &FundHandler{}
}

// Funds handles GET requests to retrieve the YieldMax fund registry.
//
// Endpoint: GET /api/fund
// Response: 200 OK with FundListing (full lineup + default selection)
func (h *FundHandler) Funds(w http.ResponseWriter, r *http.Request) {
	listing := model.FundListing{
		Tickers:          registry.All(),
		DefaultSelection: registry.DefaultSelection(),
	}

	response.RespondJSON(w, http.StatusOK, listing)
}
