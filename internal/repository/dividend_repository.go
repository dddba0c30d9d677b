package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/model"
)

type DividendRepository struct {
	db *sql.DB
}

func NewDividendRepository(db *sql.DB) *DividendRepository {
	return &DividendRepository{db: db}
}

// InsertDividends batch-inserts dividend rows for a session. Amounts are
// stored as decimal strings so ==0 and ==1 comparisons stay exact on the way
// back out.
func (s *DividendRepository) InsertDividends(ctx context.Context, dividends []model.DividendRow) error {
	for start := 0; start < len(dividends); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(dividends) {
			end = len(dividends)
		}
		batch := dividends[start:end]

		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*5)
		for i, d := range batch {
			placeholders[i] = "(?, ?, ?, ?, ?)"
			args = append(args,
				d.ID,
				d.SessionID,
				d.Ticker,
				d.Date.UTC().Format("2006-01-02"),
				d.Amount.String(),
			)
		}

		query := `
			INSERT INTO dividend_history (id, session_id, ticker, date, amount)
			VALUES ` + strings.Join(placeholders, ",")

		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert dividend history: %w", err)
		}
	}

	return nil
}

// GetBySession retrieves cached dividend rows for a session, grouped by
// ticker and ordered by date ascending within each ticker. A zero startDate
// and endDate disables range filtering; otherwise rows are limited to
// [startDate, endDate] inclusive.
func (s *DividendRepository) GetBySession(sessionID string, startDate, endDate time.Time) (map[string][]model.DividendRow, error) {
	query := `
		SELECT id, session_id, ticker, date, amount
		FROM dividend_history
		WHERE session_id = ?
	`
	args := []any{sessionID}

	if !startDate.IsZero() || !endDate.IsZero() {
		query += ` AND date >= ? AND date <= ?`
		args = append(args,
			startDate.UTC().Format("2006-01-02"),
			endDate.UTC().Format("2006-01-02"),
		)
	}

	query += ` ORDER BY ticker ASC, date ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dividend history: %w", err)
	}
	defer rows.Close()

	dividendsByTicker := make(map[string][]model.DividendRow)

	for rows.Next() {
		var d model.DividendRow
		var dateStr, amountStr string

		if err := rows.Scan(&d.ID, &d.SessionID, &d.Ticker, &dateStr, &amountStr); err != nil {
			return nil, fmt.Errorf("failed to scan dividend history results: %w", err)
		}

		d.Date, err = ParseTime(dateStr)
		if err != nil || d.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		d.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dividend amount: %w", err)
		}

		dividendsByTicker[d.Ticker] = append(dividendsByTicker[d.Ticker], d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dividend history: %w", err)
	}

	return dividendsByTicker, nil
}

// GetDateBounds returns the min and max dividend dates cached for a session
// across all tickers. The third return value is false when the session has no
// dividend rows; callers must guard on it before using the bounds.
func (s *DividendRepository) GetDateBounds(sessionID string) (time.Time, time.Time, bool, error) {
	query := `SELECT MIN(date), MAX(date) FROM dividend_history WHERE session_id = ?`

	var minStr, maxStr sql.NullString
	if err := s.db.QueryRow(query, sessionID).Scan(&minStr, &maxStr); err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to query dividend date bounds: %w", err)
	}
	if !minStr.Valid || !maxStr.Valid {
		return time.Time{}, time.Time{}, false, nil
	}

	minDate, err := ParseTime(minStr.String)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse min date: %w", err)
	}
	maxDate, err := ParseTime(maxStr.String)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to parse max date: %w", err)
	}

	return minDate, maxDate, true, nil
}

// DeleteBySession removes all cached dividend rows for a session.
func (s *DividendRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM dividend_history WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete dividend history: %w", err)
	}
	return nil
}
