package handlers

import (
	"net/http"
	"time"

	custommiddleware "github.com/ndewijer/YieldMax-Dashboard-Backend/internal/api/middleware"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/model"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/service"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/validation"
)

// DashboardHandler serves the derived dashboard views: resolved date range,
// price chart, pivoted dividend table, and dividend bar chart.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler with the provided
// service dependency.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// DateRangeResponse carries the selectable date bounds for the session.
type DateRangeResponse struct {
	MinDate string `json:"minDate"`
	MaxDate string `json:"maxDate"`
}

// DateRange handles GET requests for the session's selectable date bounds.
// With no cached data the bounds are 2000-01-01 through today; otherwise the
// min and max dividend dates across all cached tickers.
//
// Endpoint: GET /api/session/daterange
// Response: 200 OK with DateRangeResponse
// Error: 500 Internal Server Error if resolution fails
func (h *DashboardHandler) DateRange(w http.ResponseWriter, r *http.Request) {
	session, ok := custommiddleware.SessionFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "missing session", nil)
		return
	}

	minDate, maxDate, err := h.dashboardService.ResolveDateRange(session)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to resolve date range", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, DateRangeResponse{
		MinDate: minDate.Format("2006-01-02"),
		MaxDate: maxDate.Format("2006-01-02"),
	})
}

// Prices handles GET requests for the price chart payload. Traces cover each
// fund's full fetched history; the dividend date filter never applies here.
//
// Endpoint: GET /api/dashboard/prices
// Response: 200 OK with PriceChart, or the no-data fallback on an Idle session
// Error: 500 Internal Server Error if the cache read fails
func (h *DashboardHandler) Prices(w http.ResponseWriter, r *http.Request) {
	session, ok := custommiddleware.SessionFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "missing session", nil)
		return
	}

	if !session.HasData() {
		response.RespondJSON(w, http.StatusOK, newNoDataResponse())
		return
	}

	chart, err := h.dashboardService.BuildPriceChart(session)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to build price chart", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, chart)
}

// DividendTable handles GET requests for the pivoted dividend table.
//
// Endpoint: GET /api/dashboard/dividends/table?start_date=&end_date=
// Query params default to the session's resolved date bounds when omitted.
// Response: 200 OK with PivotedDividendTable, or the no-data fallback
// Error: 400 Bad Request on unparseable dates or start after end
// Error: 500 Internal Server Error if the cache read fails
func (h *DashboardHandler) DividendTable(w http.ResponseWriter, r *http.Request) {
	session, ok := custommiddleware.SessionFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "missing session", nil)
		return
	}

	if !session.HasData() {
		response.RespondJSON(w, http.StatusOK, newNoDataResponse())
		return
	}

	startDate, endDate, ok := h.parseRange(w, r, session)
	if !ok {
		return
	}

	table, err := h.dashboardService.BuildDividendTable(session, startDate, endDate)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to build dividend table", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, table)
}

// DividendChart handles GET requests for the grouped dividend bar chart.
// Bars are built from the pivoted table with non-positive entries excluded.
//
// Endpoint: GET /api/dashboard/dividends/chart?start_date=&end_date=
// Response: 200 OK with DividendChart, or the no-data fallback
// Error: 400 Bad Request on unparseable dates or start after end
// Error: 500 Internal Server Error if the cache read fails
func (h *DashboardHandler) DividendChart(w http.ResponseWriter, r *http.Request) {
	session, ok := custommiddleware.SessionFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "missing session", nil)
		return
	}

	if !session.HasData() {
		response.RespondJSON(w, http.StatusOK, newNoDataResponse())
		return
	}

	startDate, endDate, ok := h.parseRange(w, r, session)
	if !ok {
		return
	}

	table, err := h.dashboardService.BuildDividendTable(session, startDate, endDate)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to build dividend chart", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, h.dashboardService.BuildDividendChart(table))
}

// parseRange extracts the start_date/end_date query parameters, falling back
// to the session's resolved bounds for whichever side is omitted. On error a
// 400 has already been written and ok is false.
func (h *DashboardHandler) parseRange(w http.ResponseWriter, r *http.Request, session model.Session) (time.Time, time.Time, bool) {
	resolvedMin, resolvedMax, err := h.dashboardService.ResolveDateRange(session)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to resolve date range", err.Error())
		return time.Time{}, time.Time{}, false
	}

	startDate := resolvedMin
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		startDate, err = validation.ParseDate(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "failed to parse start_date", err.Error())
			return time.Time{}, time.Time{}, false
		}
	}

	endDate := resolvedMax
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		endDate, err = validation.ParseDate(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "failed to parse end_date", err.Error())
			return time.Time{}, time.Time{}, false
		}
	}

	if err := validation.ValidateDateRange(startDate, endDate); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date range", err.Error())
		return time.Time{}, time.Time{}, false
	}

	return startDate, endDate, true
}
