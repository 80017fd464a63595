// Package wallet composes the history fetcher and the analytics engine
// into per-address report aggregation.
package wallet

import (
	"context"

	"stacklens/internal/analytics"
	"stacklens/internal/domain"
	"stacklens/pkg/errors"
	"stacklens/pkg/logger"
	"stacklens/pkg/validator"
)

// HistorySource supplies the per-address data the analytics engine consumes.
type HistorySource interface {
	TransactionHistory(ctx context.Context, address string) ([]domain.Transaction, error)
	CurrentBalance(ctx context.Context, address string) (float64, error)
	PageLimit() int
}

// Service aggregates wallet analytics reports. It carries no per-request
// state; one instance serves concurrent requests for different addresses.
type Service struct {
	source HistorySource
	engine *analytics.Engine
	logger logger.Logger
}

// NewService constructs a wallet analytics Service.
func NewService(source HistorySource, engine *analytics.Engine, log logger.Logger) *Service {
	return &Service{
		source: source,
		engine: engine,
		logger: log,
	}
}

type balanceResult struct {
	balance float64
	err     error
}

// Report fetches the address's history and balance concurrently and derives
// the full metric set. A history failure aborts the report; a balance
// failure degrades to a 0 reading so the rest of the report still stands.
func (s *Service) Report(ctx context.Context, address string) (*domain.AnalyticsReport, error) {
	if !validator.IsStacksAddress(address) {
		return nil, errors.ErrInvalidAddress
	}

	// The two endpoints are independent read-only calls; fork the balance
	// fetch and join before assembling the report.
	balanceCh := make(chan balanceResult, 1)
	go func() {
		balance, err := s.source.CurrentBalance(ctx, address)
		balanceCh <- balanceResult{balance: balance, err: err}
	}()

	txs, err := s.source.TransactionHistory(ctx, address)
	bal := <-balanceCh
	if err != nil {
		return nil, err
	}

	if bal.err != nil {
		s.logger.Warn("Balance fetch failed, reporting 0", map[string]interface{}{
			"address": address,
			"error":   bal.err.Error(),
		})
		bal.balance = 0
	}

	report := &domain.AnalyticsReport{
		Address:               address,
		WalletAgeDays:         s.engine.WalletAgeDays(txs),
		CurrentBalance:        bal.balance,
		MaxHistoricalBalance:  s.engine.MaxHistoricalBalance(txs, address),
		MonthlyAverageTxCount: s.engine.MonthlyAverage(txs),
		VolatilityPercent:     s.engine.Volatility(txs, address),
		WeekendActivity:       s.engine.WeekendActivity(txs),
		LateNightActivity:     s.engine.LateNightActivity(txs),
		SampleSize:            len(txs),
		HistoryTruncated:      s.source.PageLimit() > 0 && len(txs) >= s.source.PageLimit(),
	}

	s.logger.Info("Analytics report produced", map[string]interface{}{
		"address":     address,
		"sample_size": report.SampleSize,
		"truncated":   report.HistoryTruncated,
	})

	return report, nil
}
