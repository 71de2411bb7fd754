package services

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"fintrack/internal/cache"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

const (
	trendCacheSize = 512
	trendCacheTTL  = time.Minute

	// trendFallback is the per-widget message shown when one type's trend
	// cannot be computed. Matches the dashboard's local fallback copy.
	trendFallback = "cannot fetch trend"
)

type trendData struct {
	amount   decimal.Decimal
	previous decimal.Decimal
}

// dashboardService composes the dashboard: one fault-isolated trend widget
// per transaction type plus an independently fetched transaction page.
// Widget results are cached per (user, type, range) and dropped when a
// mutation invalidates the view.
type dashboardService struct {
	trends       TrendGateway
	transactions TransactionGateway
	cache        *cache.LRU[trendData]
	group        singleflight.Group
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(trends TrendGateway, transactions TransactionGateway) DashboardServicer {
	return &dashboardService{
		trends:       trends,
		transactions: transactions,
		cache:        cache.NewLRU[trendData](trendCacheSize, trendCacheTTL),
	}
}

// Summary resolves the dashboard for one range. Each trend widget runs as
// its own unit of work; a widget failure is converted to a local fallback
// and never propagated to siblings or the transaction list.
func (s *dashboardService) Summary(userID string, preset models.RangePreset, page pagination.PageRequest) (*DashboardSummary, error) {
	if !preset.Valid() {
		preset = models.RangeDefault
	}
	page.Defaults()

	widgets := make([]TrendWidget, len(models.TransactionTypes))
	var wg sync.WaitGroup
	for i, transactionType := range models.TransactionTypes {
		wg.Add(1)
		go func(i int, transactionType models.TransactionType) {
			defer wg.Done()
			widgets[i] = s.trendWidget(userID, transactionType, preset)
		}(i, transactionType)
	}

	var transactions []models.Transaction
	var fetchErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		transactions, fetchErr = s.transactions.FetchTransactions(userID, preset, page)
	}()

	wg.Wait()

	if fetchErr != nil {
		return nil, apperrors.Wrap(apperrors.ErrFetchFailed, fetchErr)
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	return &DashboardSummary{
		Range:        preset,
		Trends:       widgets,
		Transactions: transactions,
	}, nil
}

// trendWidget computes one widget, converting any failure into the local
// fallback value.
func (s *dashboardService) trendWidget(userID string, transactionType models.TransactionType, preset models.RangePreset) (widget TrendWidget) {
	widget = TrendWidget{
		Type:           transactionType,
		Amount:         decimal.Zero,
		PreviousAmount: decimal.Zero,
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Errorw("trend computation panicked",
				"type", transactionType,
				"range", preset,
				"panic", r,
			)
			widget.Error = trendFallback
		}
	}()

	data, err := s.trend(userID, transactionType, preset)
	if err != nil {
		logger.Get().Errorw("trend fetch failed",
			"type", transactionType,
			"range", preset,
			"error", err,
		)
		widget.Error = trendFallback
		return widget
	}

	widget.Amount = data.amount
	widget.PreviousAmount = data.previous
	return widget
}

// trend returns the cached totals for one (user, type, range), computing
// them at most once across concurrent callers.
func (s *dashboardService) trend(userID string, transactionType models.TransactionType, preset models.RangePreset) (trendData, error) {
	key := trendKey(userID, transactionType, preset)

	if data, ok := s.cache.Get(key); ok {
		trendCacheHits.Inc()
		return data, nil
	}
	trendCacheMisses.Inc()

	v, err, _ := s.group.Do(key, func() (any, error) {
		now := time.Now()

		from, to := preset.Window(now)
		amount, err := s.trends.SumAmounts(userID, transactionType, from, to)
		if err != nil {
			return nil, err
		}

		prevFrom, prevTo := preset.PreviousWindow(now)
		previous, err := s.trends.SumAmounts(userID, transactionType, prevFrom, prevTo)
		if err != nil {
			return nil, err
		}

		data := trendData{amount: amount, previous: previous}
		s.cache.Set(key, data)
		return data, nil
	})
	if err != nil {
		return trendData{}, err
	}
	return v.(trendData), nil
}

// Invalidate drops every cached widget for the user. Fire-and-forget: no
// synchronization with concurrent readers is attempted.
func (s *dashboardService) Invalidate(userID string) {
	dropped := s.cache.DeletePrefix(userPrefix(userID))
	logger.Get().Debugw("dashboard view invalidated", "user_id", userID, "entries", dropped)
}

func trendKey(userID string, transactionType models.TransactionType, preset models.RangePreset) string {
	return userPrefix(userID) + string(transactionType) + ":" + string(preset)
}

func userPrefix(userID string) string {
	return "trend:" + userID + ":"
}
