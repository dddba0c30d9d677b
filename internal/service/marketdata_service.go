package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/metrics"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/model"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/yahoo"
)

// maxConcurrentFetches bounds how many Yahoo requests run at once per batch.
const maxConcurrentFetches = 8

// MarketDataService fetches price and dividend history from Yahoo Finance
// and caches it for a session.
type MarketDataService struct {
	sessionRepo  *repository.SessionRepository
	priceRepo    *repository.PriceRepository
	dividendRepo *repository.DividendRepository
	yahooClient  yahoo.Client
	metrics      *metrics.Registry
}

// NewMarketDataService creates a MarketDataService with the provided
// repository and client dependencies.
func NewMarketDataService(
	sessionRepo *repository.SessionRepository,
	priceRepo *repository.PriceRepository,
	dividendRepo *repository.DividendRepository,
	yahooClient yahoo.Client,
	metricsRegistry *metrics.Registry,
) *MarketDataService {
	return &MarketDataService{
		sessionRepo:  sessionRepo,
		priceRepo:    priceRepo,
		dividendRepo: dividendRepo,
		yahooClient:  yahooClient,
		metrics:      metricsRegistry,
	}
}

// symbolData is one ticker's fetch outcome inside a batch.
type symbolData struct {
	prices    []model.PricePoint
	dividends []model.DividendRow
	err       error
}

// FetchAndCache fetches full price and dividend history for the selected
// tickers and replaces the session's cached tables wholesale.
//
// The session transitions to Loading while the batch runs and to Loaded when
// it completes. Per-symbol fetches run concurrently and failures are
// isolated: a failed ticker is reported in the result's Failed list and
// contributes no rows, while the remaining tickers cache normally.
//
// Normalization contract:
//   - dividend dates are calendar days at midnight UTC
//   - every trading day in a fund's price history yields a dividend row;
//     days without a recorded distribution get an amount of exactly zero
//
// Parameters:
//   - ctx: Context for cancellation control
//   - session: The session whose cache is being (re)populated
//   - tickers: Validated ticker selection
//
// Returns:
//   - model.Session: The updated session (state Loaded, FetchedAt set)
//   - model.FetchResult: Per-symbol outcome of the batch
//   - error: apperrors.ErrFetchInProgress when the session is already Loading,
//     apperrors.ErrAllSymbolsFailed when no symbol produced data,
//     or a storage error; per-symbol fetch errors never surface here
func (s *MarketDataService) FetchAndCache(ctx context.Context, session model.Session, tickers []string) (model.Session, model.FetchResult, error) {
	if session.State == model.SessionLoading {
		return model.Session{}, model.FetchResult{}, apperrors.ErrFetchInProgress
	}

	batchStart := time.Now()

	session.State = model.SessionLoading
	session.Tickers = tickers
	if err := s.sessionRepo.UpdateSession(ctx, &session); err != nil {
		return model.Session{}, model.FetchResult{}, err
	}

	results := make([]symbolData, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, ticker := range tickers {
		g.Go(func() error {
			prices, dividends, err := s.fetchSymbol(gctx, session.ID, ticker)
			results[i] = symbolData{prices: prices, dividends: dividends, err: err}
			// Per-symbol failures are isolated; never abort the batch.
			return nil
		})
	}
	//nolint:errcheck // goroutines always return nil; Wait only joins them
	g.Wait()

	result := model.FetchResult{Fetched: []string{}, Failed: []string{}}
	var prices []model.PricePoint
	var dividends []model.DividendRow

	for i, ticker := range tickers {
		if results[i].err != nil {
			log.Warn().Err(results[i].err).Str("ticker", ticker).Msg("symbol fetch failed")
			s.metrics.FetchTotal.WithLabelValues("error").Inc()
			result.Failed = append(result.Failed, ticker)
			continue
		}
		s.metrics.FetchTotal.WithLabelValues("ok").Inc()
		result.Fetched = append(result.Fetched, ticker)
		prices = append(prices, results[i].prices...)
		dividends = append(dividends, results[i].dividends...)
	}

	// Replace the cache wholesale, even when the batch came back smaller.
	if err := s.priceRepo.DeleteBySession(ctx, session.ID); err != nil {
		return model.Session{}, result, err
	}
	if err := s.dividendRepo.DeleteBySession(ctx, session.ID); err != nil {
		return model.Session{}, result, err
	}
	if len(prices) > 0 {
		if err := s.priceRepo.InsertPrices(ctx, prices); err != nil {
			return model.Session{}, result, err
		}
	}
	if len(dividends) > 0 {
		if err := s.dividendRepo.InsertDividends(ctx, dividends); err != nil {
			return model.Session{}, result, err
		}
	}

	now := time.Now().UTC()
	session.State = model.SessionLoaded
	session.FetchedAt = &now
	if err := s.sessionRepo.UpdateSession(ctx, &session); err != nil {
		return model.Session{}, result, err
	}

	s.metrics.FetchDuration.Observe(time.Since(batchStart).Seconds())

	log.Info().
		Int("fetched", len(result.Fetched)).
		Int("failed", len(result.Failed)).
		Dur("elapsed", time.Since(batchStart)).
		Msg("fetch batch complete")

	if len(result.Fetched) == 0 {
		return session, result, apperrors.ErrAllSymbolsFailed
	}

	return session, result, nil
}

// fetchSymbol retrieves one ticker's full history and normalizes it into
// cache rows.
func (s *MarketDataService) fetchSymbol(ctx context.Context, sessionID, ticker string) ([]model.PricePoint, []model.DividendRow, error) {
	raw, err := s.yahooClient.QueryYahooMaxSymbol(ctx, ticker)
	if err != nil {
		return nil, nil, err
	}

	chart, err := s.yahooClient.ParseChart(raw)
	if err != nil {
		return nil, nil, err
	}

	// Dividend events keyed by calendar day for the zero-fill join below.
	eventsByDay := make(map[string]decimal.Decimal, len(chart.Dividends))
	for _, ev := range chart.Dividends {
		eventsByDay[ev.Date.Format("2006-01-02")] = ev.Amount
	}

	prices := make([]model.PricePoint, 0, len(chart.Indicators))
	dividends := make([]model.DividendRow, 0, len(chart.Indicators))

	for _, ind := range chart.Indicators {
		day := toCalendarDay(ind.Date)

		prices = append(prices, model.PricePoint{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Ticker:    ticker,
			Date:      day,
			Close:     ind.PriceClose,
		})

		amount := decimal.Zero
		if ev, ok := eventsByDay[day.Format("2006-01-02")]; ok {
			amount = ev
		}
		dividends = append(dividends, model.DividendRow{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Ticker:    ticker,
			Date:      day,
			Amount:    amount,
		})
	}

	return prices, dividends, nil
}

// toCalendarDay strips the time and timezone components, leaving midnight UTC.
func toCalendarDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
