package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/YieldMax-Dashboard-Backend/internal/api/middleware"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/model"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/testutil"
)

func TestSessionHandlerCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sessions := testutil.NewTestSessionService(t, db)
	marketData := testutil.NewTestMarketDataService(t, db, testutil.NewMockYahooClient())
	handler := handlers.NewSessionHandler(sessions, marketData)

	req := httptest.NewRequest(http.MethodPost, "/api/session", nil)
	w := httptest.NewRecorder()

	handler.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}

	var resp handlers.CreateSessionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("Expected a session token")
	}
	if resp.Session.State != model.SessionIdle {
		t.Errorf("Expected idle session, got %s", resp.Session.State)
	}
}

func TestSessionHandlerFetch(t *testing.T) {
	mockDays := []time.Time{
		testutil.Day(2023, 1, 2),
		testutil.Day(2023, 1, 3),
	}

	t.Run("fetches the requested tickers", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sessions := testutil.NewTestSessionService(t, db)
		mock := testutil.NewMockYahooClient()
		mock.WithSymbolResponse("TSLY", testutil.CreateMockYahooResponseWithDividends(
			"TSLY", mockDays, []float64{0, 0.5},
		))
		marketData := testutil.NewTestMarketDataService(t, db, mock)
		handler := handlers.NewSessionHandler(sessions, marketData)

		session := testutil.NewSession().Build(t, db)
		body := bytes.NewBufferString(`{"tickers": ["TSLY"]}`)
		req := httptest.NewRequest(http.MethodPost, "/api/session/fetch", body)
		req = req.WithContext(custommiddleware.ContextWithSession(req.Context(), session))
		w := httptest.NewRecorder()

		handler.Fetch(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp handlers.FetchResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Session.State != model.SessionLoaded {
			t.Errorf("Expected loaded session, got %s", resp.Session.State)
		}
		if len(resp.Result.Fetched) != 1 || resp.Result.Fetched[0] != "TSLY" {
			t.Errorf("Expected TSLY fetched, got %v", resp.Result.Fetched)
		}
	})

	t.Run("empty selection falls back to the default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sessions := testutil.NewTestSessionService(t, db)
		mock := testutil.NewMockYahooClient()
		marketData := testutil.NewTestMarketDataService(t, db, mock)
		handler := handlers.NewSessionHandler(sessions, marketData)

		session := testutil.NewSession().Build(t, db)
		req := httptest.NewRequest(http.MethodPost, "/api/session/fetch", bytes.NewBufferString(`{}`))
		req = req.WithContext(custommiddleware.ContextWithSession(req.Context(), session))
		w := httptest.NewRecorder()

		handler.Fetch(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp handlers.FetchResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(resp.Result.Fetched) != 2 {
			t.Errorf("Expected the 2-fund default selection, got %v", resp.Result.Fetched)
		}
	})

	t.Run("bodiless request falls back to the default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sessions := testutil.NewTestSessionService(t, db)
		marketData := testutil.NewTestMarketDataService(t, db, testutil.NewMockYahooClient())
		handler := handlers.NewSessionHandler(sessions, marketData)

		session := testutil.NewSession().Build(t, db)
		req := httptest.NewRequest(http.MethodPost, "/api/session/fetch", nil)
		req = req.WithContext(custommiddleware.ContextWithSession(req.Context(), session))
		w := httptest.NewRecorder()

		handler.Fetch(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp handlers.FetchResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(resp.Result.Fetched) != 2 {
			t.Errorf("Expected the 2-fund default selection, got %v", resp.Result.Fetched)
		}
	})

	t.Run("rejects unknown tickers", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sessions := testutil.NewTestSessionService(t, db)
		marketData := testutil.NewTestMarketDataService(t, db, testutil.NewMockYahooClient())
		handler := handlers.NewSessionHandler(sessions, marketData)

		session := testutil.NewSession().Build(t, db)
		body := bytes.NewBufferString(`{"tickers": ["AAPL"]}`)
		req := httptest.NewRequest(http.MethodPost, "/api/session/fetch", body)
		req = req.WithContext(custommiddleware.ContextWithSession(req.Context(), session))
		w := httptest.NewRecorder()

		handler.Fetch(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sessions := testutil.NewTestSessionService(t, db)
		marketData := testutil.NewTestMarketDataService(t, db, testutil.NewMockYahooClient())
		handler := handlers.NewSessionHandler(sessions, marketData)

		session := testutil.NewSession().Build(t, db)
		req := httptest.NewRequest(http.MethodPost, "/api/session/fetch", bytes.NewBufferString(`{not json`))
		req = req.WithContext(custommiddleware.ContextWithSession(req.Context(), session))
		w := httptest.NewRecorder()

		handler.Fetch(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("rejects a fetch while one is in flight", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sessions := testutil.NewTestSessionService(t, db)
		marketData := testutil.NewTestMarketDataService(t, db, testutil.NewMockYahooClient())
		handler := handlers.NewSessionHandler(sessions, marketData)

		session := testutil.NewSession().
			WithState(model.SessionLoading).
			WithTickers("TSLY").
			Build(t, db)
		body := bytes.NewBufferString(`{"tickers": ["TSLY"]}`)
		req := httptest.NewRequest(http.MethodPost, "/api/session/fetch", body)
		req = req.WithContext(custommiddleware.ContextWithSession(req.Context(), session))
		w := httptest.NewRecorder()

		handler.Fetch(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected status 409, got %d", w.Code)
		}
	})

	t.Run("reports a bad gateway when every symbol fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sessions := testutil.NewTestSessionService(t, db)
		mock := testutil.NewMockYahooClient().WithError(fmt.Errorf("rate limited"))
		marketData := testutil.NewTestMarketDataService(t, db, mock)
		handler := handlers.NewSessionHandler(sessions, marketData)

		session := testutil.NewSession().Build(t, db)
		body := bytes.NewBufferString(`{"tickers": ["TSLY", "YMAX"]}`)
		req := httptest.NewRequest(http.MethodPost, "/api/session/fetch", body)
		req = req.WithContext(custommiddleware.ContextWithSession(req.Context(), session))
		w := httptest.NewRecorder()

		handler.Fetch(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d", w.Code)
		}
	})

	t.Run("requires a session in context", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sessions := testutil.NewTestSessionService(t, db)
		marketData := testutil.NewTestMarketDataService(t, db, testutil.NewMockYahooClient())
		handler := handlers.NewSessionHandler(sessions, marketData)

		req := httptest.NewRequest(http.MethodPost, "/api/session/fetch", nil)
		w := httptest.NewRecorder()

		handler.Fetch(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})
}
