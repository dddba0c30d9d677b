package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/model"
)

type PriceRepository struct {
	db *sql.DB
}

func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// insertBatchSize bounds the number of rows per INSERT so the statement stays
// below SQLite's bound-parameter limit.
const insertBatchSize = 500

// InsertPrices batch-inserts price points for a session.
func (s *PriceRepository) InsertPrices(ctx context.Context, prices []model.PricePoint) error {
	for start := 0; start < len(prices); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(prices) {
			end = len(prices)
		}
		batch := prices[start:end]

		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*5)
		for i, p := range batch {
			placeholders[i] = "(?, ?, ?, ?, ?)"
			args = append(args,
				p.ID,
				p.SessionID,
				p.Ticker,
				p.Date.UTC().Format("2006-01-02"),
				p.Close,
			)
		}

		query := `
			INSERT INTO price_history (id, session_id, ticker, date, close)
			VALUES ` + strings.Join(placeholders, ",")

		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert price history: %w", err)
		}
	}

	return nil
}

// GetBySession retrieves all cached price points for a session, grouped by
// ticker and ordered by date ascending within each ticker.
func (s *PriceRepository) GetBySession(sessionID string) (map[string][]model.PricePoint, error) {
	query := `
		SELECT id, session_id, ticker, date, close
		FROM price_history
		WHERE session_id = ?
		ORDER BY ticker ASC, date ASC
	`

	rows, err := s.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query price history: %w", err)
	}
	defer rows.Close()

	pricesByTicker := make(map[string][]model.PricePoint)

	for rows.Next() {
		var p model.PricePoint
		var dateStr string

		if err := rows.Scan(&p.ID, &p.SessionID, &p.Ticker, &dateStr, &p.Close); err != nil {
			return nil, fmt.Errorf("failed to scan price history results: %w", err)
		}

		p.Date, err = ParseTime(dateStr)
		if err != nil || p.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		pricesByTicker[p.Ticker] = append(pricesByTicker[p.Ticker], p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price history: %w", err)
	}

	return pricesByTicker, nil
}

// DeleteBySession removes all cached price points for a session.
// Used when a refetch replaces the cache wholesale.
func (s *PriceRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM price_history WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete price history: %w", err)
	}
	return nil
}
