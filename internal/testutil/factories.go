package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/model"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/repository"
)

// SessionBuilder builds test sessions with sensible defaults.
//
// Example usage:
//
//	session := testutil.NewSession().
//	    WithState(model.SessionLoaded).
//	    WithTickers("TSLY", "YMAX").
//	    Build(t, db)
type SessionBuilder struct {
	session model.Session
}

// NewSession creates a builder for an unexpired Idle session.
func NewSession() *SessionBuilder {
	now := time.Now().UTC()
	return &SessionBuilder{
		session: model.Session{
			ID:        uuid.New().String(),
			State:     model.SessionIdle,
			CreatedAt: now,
			ExpiresAt: now.Add(TestSessionTTL),
		},
	}
}

// WithState sets the session state.
func (b *SessionBuilder) WithState(state model.SessionState) *SessionBuilder {
	b.session.State = state
	if state == model.SessionLoaded && b.session.FetchedAt == nil {
		now := time.Now().UTC()
		b.session.FetchedAt = &now
	}
	return b
}

// WithTickers sets the session's ticker selection.
func (b *SessionBuilder) WithTickers(tickers ...string) *SessionBuilder {
	b.session.Tickers = tickers
	return b
}

// WithExpiresAt overrides the session expiry.
func (b *SessionBuilder) WithExpiresAt(expiresAt time.Time) *SessionBuilder {
	b.session.ExpiresAt = expiresAt
	return b
}

// Build inserts the session and returns it.
func (b *SessionBuilder) Build(t *testing.T, db *sql.DB) model.Session {
	t.Helper()

	repo := repository.NewSessionRepository(db)
	if err := repo.InsertSession(context.Background(), &b.session); err != nil {
		t.Fatalf("Failed to insert test session: %v", err)
	}

	return b.session
}

// PriceBuilder builds cached price points for a session.
//
// Example usage:
//
//	testutil.NewPricePoint(session.ID, "TSLY").
//	    WithDate(testutil.Day(2023, 1, 3)).
//	    WithClose(17.82).
//	    Build(t, db)
type PriceBuilder struct {
	price model.PricePoint
}

// NewPricePoint creates a builder for one cached price point.
func NewPricePoint(sessionID, ticker string) *PriceBuilder {
	return &PriceBuilder{
		price: model.PricePoint{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Ticker:    ticker,
			Date:      Day(2023, time.January, 2),
			Close:     10.0,
		},
	}
}

// WithDate sets the price date.
func (b *PriceBuilder) WithDate(date time.Time) *PriceBuilder {
	b.price.Date = date
	return b
}

// WithClose sets the closing price.
func (b *PriceBuilder) WithClose(close float64) *PriceBuilder {
	b.price.Close = close
	return b
}

// Build inserts the price point and returns it.
func (b *PriceBuilder) Build(t *testing.T, db *sql.DB) model.PricePoint {
	t.Helper()

	repo := repository.NewPriceRepository(db)
	if err := repo.InsertPrices(context.Background(), []model.PricePoint{b.price}); err != nil {
		t.Fatalf("Failed to insert test price point: %v", err)
	}

	return b.price
}

// DividendBuilder builds cached dividend rows for a session.
//
// Example usage:
//
//	testutil.NewDividendRow(session.ID, "TSLY").
//	    WithDate(testutil.Day(2023, 1, 1)).
//	    WithAmount(0.5).
//	    Build(t, db)
type DividendBuilder struct {
	dividend model.DividendRow
}

// NewDividendRow creates a builder for one cached dividend row with a zero
// amount, matching the fetch service's zero-fill default.
func NewDividendRow(sessionID, ticker string) *DividendBuilder {
	return &DividendBuilder{
		dividend: model.DividendRow{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Ticker:    ticker,
			Date:      Day(2023, time.January, 2),
			Amount:    decimal.Zero,
		},
	}
}

// WithDate sets the dividend date.
func (b *DividendBuilder) WithDate(date time.Time) *DividendBuilder {
	b.dividend.Date = date
	return b
}

// WithAmount sets the dividend amount.
func (b *DividendBuilder) WithAmount(amount float64) *DividendBuilder {
	b.dividend.Amount = decimal.NewFromFloat(amount)
	return b
}

// Build inserts the dividend row and returns it.
func (b *DividendBuilder) Build(t *testing.T, db *sql.DB) model.DividendRow {
	t.Helper()

	repo := repository.NewDividendRepository(db)
	if err := repo.InsertDividends(context.Background(), []model.DividendRow{b.dividend}); err != nil {
		t.Fatalf("Failed to insert test dividend row: %v", err)
	}

	return b.dividend
}
