package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/metrics"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/service"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/yahoo"
)

// TestSessionTTL is the session lifetime used by test services.
const TestSessionTTL = time.Hour

func NewTestSessionService(t *testing.T, db *sql.DB) *service.SessionService {
	t.Helper()

	sessionRepo := repository.NewSessionRepository(db)

	sessionService, err := service.NewSessionService(
		sessionRepo,
		"", // ephemeral key per test
		TestSessionTTL,
		metrics.NewRegistry(),
	)
	if err != nil {
		t.Fatalf("Failed to create session service: %v", err)
	}

	return sessionService
}

func NewTestMarketDataService(t *testing.T, db *sql.DB, yahooClient yahoo.Client) *service.MarketDataService {
	t.Helper()

	sessionRepo := repository.NewSessionRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	dividendRepo := repository.NewDividendRepository(db)

	return service.NewMarketDataService(
		sessionRepo,
		priceRepo,
		dividendRepo,
		yahooClient,
		metrics.NewRegistry(),
	)
}

func NewTestDashboardService(t *testing.T, db *sql.DB) *service.DashboardService {
	t.Helper()

	priceRepo := repository.NewPriceRepository(db)
	dividendRepo := repository.NewDividendRepository(db)

	return service.NewDashboardService(priceRepo, dividendRepo)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// Day builds a midnight-UTC date, the granularity all cached market data
// uses.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
