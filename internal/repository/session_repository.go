package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/model"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// InsertSession stores a new session row.
func (s *SessionRepository) InsertSession(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO session (id, state, tickers, fetched_at, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var fetchedAt any
	if session.FetchedAt != nil {
		fetchedAt = session.FetchedAt.UTC().Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		string(session.State),
		strings.Join(session.Tickers, ","),
		fetchedAt,
		session.CreatedAt.UTC().Format(time.RFC3339),
		session.ExpiresAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID.
// Returns apperrors.ErrSessionNotFound if no row matches.
func (s *SessionRepository) GetSession(id string) (model.Session, error) {
	query := `
		SELECT id, state, tickers, fetched_at, created_at, expires_at
		FROM session
		WHERE id = ?
	`

	var session model.Session
	var state, tickers, createdAtStr, expiresAtStr string
	var fetchedAtStr sql.NullString

	err := s.db.QueryRow(query, id).Scan(
		&session.ID,
		&state,
		&tickers,
		&fetchedAtStr,
		&createdAtStr,
		&expiresAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Session{}, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to query session: %w", err)
	}

	session.State = model.SessionState(state)
	if tickers != "" {
		session.Tickers = strings.Split(tickers, ",")
	}

	if fetchedAtStr.Valid {
		fetchedAt, err := ParseTime(fetchedAtStr.String)
		if err != nil {
			return model.Session{}, fmt.Errorf("failed to parse fetched_at: %w", err)
		}
		session.FetchedAt = &fetchedAt
	}

	session.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || session.CreatedAt.IsZero() {
		return model.Session{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	session.ExpiresAt, err = ParseTime(expiresAtStr)
	if err != nil || session.ExpiresAt.IsZero() {
		return model.Session{}, fmt.Errorf("failed to parse expires_at: %w", err)
	}

	return session, nil
}

// UpdateSession persists the session's state, ticker selection and fetch
// timestamp.
func (s *SessionRepository) UpdateSession(ctx context.Context, session *model.Session) error {
	query := `
		UPDATE session
		SET state = ?, tickers = ?, fetched_at = ?
		WHERE id = ?
	`

	var fetchedAt any
	if session.FetchedAt != nil {
		fetchedAt = session.FetchedAt.UTC().Format(time.RFC3339)
	}

	result, err := s.db.ExecContext(ctx, query,
		string(session.State),
		strings.Join(session.Tickers, ","),
		fetchedAt,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrSessionNotFound
	}

	return nil
}

// DeleteExpired removes all sessions whose expiry is at or before now.
// Cached price and dividend rows go with them via ON DELETE CASCADE.
// Returns the number of sessions removed.
func (s *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	query := `DELETE FROM session WHERE expires_at <= ?`

	result, err := s.db.ExecContext(ctx, query, now.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sessions: %w", err)
	}

	return int(rows), nil
}

// CountActive returns the number of unexpired sessions.
func (s *SessionRepository) CountActive(now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM session WHERE expires_at > ?`

	var count int
	if err := s.db.QueryRow(query, now.UTC().Format(time.RFC3339)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	return count, nil
}
