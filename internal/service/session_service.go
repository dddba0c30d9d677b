package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/metrics"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/model"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/repository"
)

// SessionService manages dashboard session lifecycle: creation, token
// resolution, and expiry.
//
// Clients hold a fernet token wrapping the session ID; the server keeps the
// session row and its cached market data. Verifying the token enforces the
// session TTL cryptographically before the database is ever consulted.
type SessionService struct {
	sessionRepo *repository.SessionRepository
	keys        []*fernet.Key
	ttl         time.Duration
	metrics     *metrics.Registry
}

// NewSessionService creates a SessionService.
//
// encodedKey is the base64 fernet key from configuration; when empty a fresh
// key is generated, which invalidates any tokens minted by a previous run.
// That is acceptable here: cached market data does not survive a restart
// either, so the sessions those tokens name are gone regardless.
func NewSessionService(
	sessionRepo *repository.SessionRepository,
	encodedKey string,
	ttl time.Duration,
	metricsRegistry *metrics.Registry,
) (*SessionService, error) {
	var keys []*fernet.Key

	if encodedKey == "" {
		key := new(fernet.Key)
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		keys = []*fernet.Key{key}
		log.Info().Msg("no session key configured, generated an ephemeral one")
	} else {
		decoded, err := fernet.DecodeKeys(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode session key: %w", err)
		}
		keys = decoded
	}

	return &SessionService{
		sessionRepo: sessionRepo,
		keys:        keys,
		ttl:         ttl,
		metrics:     metricsRegistry,
	}, nil
}

// CreateSession creates a new Idle session and mints its client token.
//
// Returns:
//   - model.Session: The created session (state Idle, no cached data)
//   - string: The fernet token the client presents on later requests
//   - error: If persisting the session or minting the token fails
func (s *SessionService) CreateSession(ctx context.Context) (model.Session, string, error) {
	now := time.Now().UTC()

	session := model.Session{
		ID:        uuid.New().String(),
		State:     model.SessionIdle,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessionRepo.InsertSession(ctx, &session); err != nil {
		return model.Session{}, "", err
	}

	token, err := fernet.EncryptAndSign([]byte(session.ID), s.keys[0])
	if err != nil {
		return model.Session{}, "", fmt.Errorf("failed to mint session token: %w", err)
	}

	s.metrics.SessionsCreated.Inc()
	s.refreshActiveGauge()

	return session, string(token), nil
}

// ResolveToken verifies a client token and loads the session it names.
//
// Returns:
//   - apperrors.ErrInvalidSessionToken if the token fails verification or is past its TTL
//   - apperrors.ErrSessionNotFound if the session row no longer exists
//   - apperrors.ErrSessionExpired if the session row is past its expiry
func (s *SessionService) ResolveToken(token string) (model.Session, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), s.ttl, s.keys)
	if msg == nil {
		return model.Session{}, apperrors.ErrInvalidSessionToken
	}

	session, err := s.sessionRepo.GetSession(string(msg))
	if err != nil {
		return model.Session{}, err
	}

	if !session.ExpiresAt.After(time.Now().UTC()) {
		return model.Session{}, apperrors.ErrSessionExpired
	}

	return session, nil
}

// PurgeExpired removes all expired sessions and their cached tables.
// Invoked periodically by the cron janitor.
//
// Returns the number of sessions removed.
func (s *SessionService) PurgeExpired(ctx context.Context) (int, error) {
	removed, err := s.sessionRepo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		log.Info().Int("sessions", removed).Msg("purged expired sessions")
	}
	s.refreshActiveGauge()

	return removed, nil
}

// refreshActiveGauge updates the active-session gauge. Failures only cost
// metric accuracy and are logged at debug.
func (s *SessionService) refreshActiveGauge() {
	count, err := s.sessionRepo.CountActive(time.Now().UTC())
	if err != nil {
		log.Debug().Err(err).Msg("failed to count active sessions")
		return
	}
	s.metrics.ActiveSessions.Set(float64(count))
}
