package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/model"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/testutil"
)

func TestSessionRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSessionRepository(db)
	ctx := context.Background()

	t.Run("insert and get roundtrip", func(t *testing.T) {
		inserted := testutil.NewSession().
			WithTickers("TSLY", "YMAX").
			Build(t, db)

		got, err := repo.GetSession(inserted.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if got.ID != inserted.ID {
			t.Errorf("Expected ID %s, got %s", inserted.ID, got.ID)
		}
		if got.State != model.SessionIdle {
			t.Errorf("Expected idle state, got %s", got.State)
		}
		if len(got.Tickers) != 2 || got.Tickers[0] != "TSLY" || got.Tickers[1] != "YMAX" {
			t.Errorf("Expected tickers [TSLY YMAX], got %v", got.Tickers)
		}
		if got.FetchedAt != nil {
			t.Error("Expected nil FetchedAt for idle session")
		}
	})

	t.Run("get preserves fetched_at", func(t *testing.T) {
		inserted := testutil.NewSession().
			WithState(model.SessionLoaded).
			WithTickers("TSLY").
			Build(t, db)

		got, err := repo.GetSession(inserted.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if got.State != model.SessionLoaded {
			t.Errorf("Expected loaded state, got %s", got.State)
		}
		if got.FetchedAt == nil {
			t.Fatal("Expected FetchedAt for loaded session")
		}
	})

	t.Run("get unknown session", func(t *testing.T) {
		_, err := repo.GetSession(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("update session", func(t *testing.T) {
		session := testutil.NewSession().Build(t, db)

		session.State = model.SessionLoading
		session.Tickers = []string{"MSTY"}
		if err := repo.UpdateSession(ctx, &session); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		got, err := repo.GetSession(session.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.State != model.SessionLoading {
			t.Errorf("Expected loading state, got %s", got.State)
		}
		if len(got.Tickers) != 1 || got.Tickers[0] != "MSTY" {
			t.Errorf("Expected tickers [MSTY], got %v", got.Tickers)
		}
	})

	t.Run("update unknown session", func(t *testing.T) {
		session := model.Session{
			ID:        testutil.MakeID(),
			State:     model.SessionIdle,
			CreatedAt: time.Now().UTC(),
			ExpiresAt: time.Now().UTC().Add(time.Hour),
		}

		if err := repo.UpdateSession(ctx, &session); !errors.Is(err, apperrors.ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestSessionRepositoryDeleteExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSessionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	expired := testutil.NewSession().
		WithExpiresAt(now.Add(-time.Minute)).
		Build(t, db)
	live := testutil.NewSession().Build(t, db)

	// Expired session's cached rows must go with it.
	testutil.NewPricePoint(expired.ID, "TSLY").Build(t, db)
	testutil.NewDividendRow(expired.ID, "TSLY").Build(t, db)

	deleted, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 deleted session, got %d", deleted)
	}

	if _, err := repo.GetSession(expired.ID); !errors.Is(err, apperrors.ErrSessionNotFound) {
		t.Errorf("Expected expired session gone, got %v", err)
	}
	if _, err := repo.GetSession(live.ID); err != nil {
		t.Errorf("Expected live session to survive, got %v", err)
	}

	priceRepo := repository.NewPriceRepository(db)
	prices, err := priceRepo.GetBySession(expired.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(prices) != 0 {
		t.Error("Expected cascade delete of price rows")
	}

	dividendRepo := repository.NewDividendRepository(db)
	dividends, err := dividendRepo.GetBySession(expired.ID, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(dividends) != 0 {
		t.Error("Expected cascade delete of dividend rows")
	}
}

func TestSessionRepositoryCountActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSessionRepository(db)
	now := time.Now().UTC()

	testutil.NewSession().Build(t, db)
	testutil.NewSession().Build(t, db)
	testutil.NewSession().WithExpiresAt(now.Add(-time.Minute)).Build(t, db)

	count, err := repo.CountActive(now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 active sessions, got %d", count)
	}
}
