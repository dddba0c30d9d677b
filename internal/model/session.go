package model

import "time"

// SessionState describes where a dashboard session is in its lifecycle.
//
// A session starts Idle (nothing cached), moves to Loading while a fetch is
// in flight, and lands in Loaded once the cache holds data. A new fetch
// trigger moves a Loaded session back through Loading. Date-range changes do
// not affect the state; they only recompute derived views.
type SessionState string

const (
	// SessionIdle means the session has no cached market data yet.
	SessionIdle SessionState = "idle"
	// SessionLoading means a fetch is in flight for the session.
	SessionLoading SessionState = "loading"
	// SessionLoaded means the session cache holds fetched market data.
	SessionLoaded SessionState = "loaded"
)

// Session represents one user's dashboard session. The session owns the
// cached price and dividend tables; they are replaced wholesale on each
// fetch trigger and discarded when the session expires.
type Session struct {
	ID        string       `json:"id"`
	State     SessionState `json:"state"`
	Tickers   []string     `json:"tickers"`
	FetchedAt *time.Time   `json:"fetchedAt,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// HasData reports whether the session cache holds fetched data.
func (s Session) HasData() bool {
	return s.State == SessionLoaded
}
