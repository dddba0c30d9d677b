package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrSessionNotFound indicates that a session with the given ID does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired indicates that the session exists but is past its expiry.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidSessionToken indicates that a session token failed verification.
	ErrInvalidSessionToken = errors.New("invalid session token")

	// ErrUnknownTicker indicates that a requested symbol is not part of the
	// YieldMax fund registry.
	ErrUnknownTicker = errors.New("unknown ticker")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidDate indicates that a date parameter is missing or unparseable.
	ErrInvalidDate = errors.New("invalid date parameter")

	// ErrEmptySelection indicates that a fetch was triggered with no tickers selected.
	ErrEmptySelection = errors.New("ticker selection cannot be empty")

	// ErrFetchInProgress indicates that a fetch is already running for the session.
	ErrFetchInProgress = errors.New("fetch already in progress")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	// ErrFailedToRetrievePrices indicates the cached price table could not be read.
	ErrFailedToRetrievePrices = errors.New("failed to retrieve price history")

	// ErrFailedToRetrieveDividends indicates the cached dividend table could not be read.
	ErrFailedToRetrieveDividends = errors.New("failed to retrieve dividends")

	// ErrAllSymbolsFailed indicates that every symbol in a fetch batch failed,
	// leaving the session cache empty.
	ErrAllSymbolsFailed = errors.New("all symbols failed to fetch")

	// ErrFailedToGetVersionInfo indicates the version lookup failed.
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
