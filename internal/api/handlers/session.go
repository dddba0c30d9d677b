package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	custommiddleware "github.com/ndewijer/YieldMax-Dashboard-Backend/internal/api/middleware"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/model"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/registry"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/service"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/validation"
)

// SessionHandler handles session creation and the fetch trigger.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the session and market data services.
type SessionHandler struct {
	sessionService    *service.SessionService
	marketDataService *service.MarketDataService
}

// NewSessionHandler creates a new SessionHandler with the provided service
// dependencies.
func NewSessionHandler(sessionService *service.SessionService, marketDataService *service.MarketDataService) *SessionHandler {
	return &SessionHandler{
		sessionService:    sessionService,
		marketDataService: marketDataService,
	}
}

// CreateSessionResponse is the payload returned when a session is created.
type CreateSessionResponse struct {
	Token   string        `json:"token"`
	Session model.Session `json:"session"`
}

// Create handles POST requests to start a new dashboard session.
//
// Endpoint: POST /api/session
// Response: 201 Created with the session token and the Idle session
// Error: 500 Internal Server Error if session creation fails
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, token, err := h.sessionService.CreateSession(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create session", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, CreateSessionResponse{
		Token:   token,
		Session: session,
	})
}

// FetchResponse is the payload returned after a fetch trigger.
type FetchResponse struct {
	Session model.Session     `json:"session"`
	Result  model.FetchResult `json:"result"`
}

// Fetch handles POST requests triggering a market-data fetch for the
// session. The cached tables are replaced wholesale with the new batch.
//
// Endpoint: POST /api/session/fetch
// Body: {"tickers": ["YMAX", "YMAG"]} — empty falls back to the default selection
// Response: 200 OK with the Loaded session and the per-symbol fetch result
// Error: 400 Bad Request on an unknown ticker or malformed body
// Error: 409 Conflict when a fetch is already running for the session
// Error: 502 Bad Gateway when every symbol failed to fetch
// Error: 500 Internal Server Error on storage failures
func (h *SessionHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, ok := custommiddleware.SessionFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "missing session", nil)
		return
	}

	var req request.FetchRequest
	if r.Body != nil {
		// An absent body means the default selection, same as {}.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			response.RespondError(w, http.StatusBadRequest, "failed to parse request body", err.Error())
			return
		}
	}

	tickers := req.Tickers
	if len(tickers) == 0 {
		tickers = registry.DefaultSelection()
	}

	if err := validation.ValidateSelection(tickers); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ticker selection", err.Error())
		return
	}

	session, result, err := h.marketDataService.FetchAndCache(r.Context(), session, tickers)
	if err != nil {
		if errors.Is(err, apperrors.ErrFetchInProgress) {
			response.RespondError(w, http.StatusConflict, "a fetch is already running for this session", err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrAllSymbolsFailed) {
			response.RespondError(w, http.StatusBadGateway, "all symbols failed to fetch", result.Failed)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to fetch market data", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, FetchResponse{
		Session: session,
		Result:  result,
	})
}
