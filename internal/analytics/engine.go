// Package analytics derives behavioral and financial wallet metrics from a
// fetched transaction history. Pure statistical computations, no I/O.
package analytics

import (
	"math"
	"sort"
	"time"

	"stacklens/internal/domain"
)

const (
	lateNightStartHour = 23
	lateNightEndHour   = 5
	daysPerMonth       = 30
)

// Engine computes wallet metrics. Every method is a pure function of its
// arguments: the target address is always an explicit parameter, inputs are
// never mutated, and each method tolerates empty or tiny histories by
// returning a defined zero value. A single Engine is safe under concurrent
// use.
type Engine struct {
	now func() time.Time
	loc *time.Location
}

// NewEngine creates an Engine using the system clock and local time zone.
func NewEngine() *Engine {
	return &Engine{now: time.Now, loc: time.Local}
}

// NewEngineWithClock creates an Engine with a fixed clock and time zone,
// used to pin time-dependent metrics in tests.
func NewEngineWithClock(now func() time.Time, loc *time.Location) *Engine {
	return &Engine{now: now, loc: loc}
}

// WalletAgeDays returns whole days since the oldest transaction in the
// set. Because only a bounded page of history is fetched, this is a lower
// bound on the true account age; callers surface that via the report's
// truncation flag.
func (e *Engine) WalletAgeDays(txs []domain.Transaction) int {
	if len(txs) == 0 {
		return 0
	}

	oldest := txs[0].BurnBlockTime
	for _, tx := range txs[1:] {
		if tx.BurnBlockTime < oldest {
			oldest = tx.BurnBlockTime
		}
	}

	ageMs := e.now().UnixMilli() - oldest*1000
	if ageMs < 0 {
		return 0
	}
	return int(ageMs / (24 * 60 * 60 * 1000))
}

// MaxHistoricalBalance replays the history in chronological order and
// returns the highest running balance observed. The walk seeds at 0, so the
// result is an approximation relative to whatever balance predated the
// fetched page, not a ledger-verified figure.
//
// Self-transfers are skipped entirely, including their fee. For every other
// transaction the fee is charged whenever the address is the sender,
// regardless of transaction type.
func (e *Engine) MaxHistoricalBalance(txs []domain.Transaction, address string) float64 {
	if len(txs) == 0 {
		return 0
	}

	var balance, maxBalance float64

	for _, tx := range sortedByTime(txs) {
		if tx.IsTokenTransfer() {
			if tx.IsSelfTransfer() {
				continue
			}
			if tx.RecipientAddress == address {
				balance += tx.Amount()
			} else if tx.SenderAddress == address {
				balance -= tx.Amount()
			}
		}

		if tx.SenderAddress == address {
			balance -= tx.Fee()
		}

		maxBalance = math.Max(maxBalance, balance)
	}

	return maxBalance
}

// MonthlyAverage returns transactions per 30-day window over the observed
// wallet age.
func (e *Engine) MonthlyAverage(txs []domain.Transaction) float64 {
	if len(txs) == 0 {
		return 0
	}

	ageDays := e.WalletAgeDays(txs)
	if ageDays == 0 {
		return 0
	}

	months := float64(ageDays) / daysPerMonth
	return float64(len(txs)) / months
}

// Volatility measures the dispersion of the reconstructed balance series as
// a percentage of its mean (population standard deviation over per-transfer
// samples). When the mean is zero or negative the raw deviation is returned
// instead of a ratio. Fewer than two token-transfer samples yield 0.
//
// The sampling here intentionally differs from MaxHistoricalBalance: the fee
// and amount of a sending transfer fold into one post-update sample, and
// self-transfers are not excluded.
func (e *Engine) Volatility(txs []domain.Transaction, address string) float64 {
	if len(txs) < 2 {
		return 0
	}

	var balances []float64
	var balance float64

	for _, tx := range sortedByTime(txs) {
		if !tx.IsTokenTransfer() {
			continue
		}

		if tx.RecipientAddress == address {
			balance += tx.Amount()
		}
		if tx.SenderAddress == address {
			balance -= tx.Amount()
			balance -= tx.Fee()
		}

		balances = append(balances, balance)
	}

	if len(balances) < 2 {
		return 0
	}

	mean, stdDev := meanStdDev(balances)
	if mean > 0 {
		return (stdDev / mean) * 100
	}
	return stdDev
}

// WeekendActivity returns the percentage of transactions confirmed on a
// Saturday or Sunday in the engine's time zone.
func (e *Engine) WeekendActivity(txs []domain.Transaction) float64 {
	if len(txs) == 0 {
		return 0
	}

	weekend := 0
	for _, tx := range txs {
		switch tx.Time().In(e.loc).Weekday() {
		case time.Saturday, time.Sunday:
			weekend++
		}
	}

	return float64(weekend) / float64(len(txs)) * 100
}

// LateNightActivity returns the percentage of transactions confirmed in the
// 23:00-05:59 window in the engine's time zone.
func (e *Engine) LateNightActivity(txs []domain.Transaction) float64 {
	if len(txs) == 0 {
		return 0
	}

	lateNight := 0
	for _, tx := range txs {
		hour := tx.Time().In(e.loc).Hour()
		if hour >= lateNightStartHour || hour <= lateNightEndHour {
			lateNight++
		}
	}

	return float64(lateNight) / float64(len(txs)) * 100
}

// sortedByTime returns a timestamp-ascending copy. The input is never
// reordered; ties keep their incoming order.
func sortedByTime(txs []domain.Transaction) []domain.Transaction {
	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BurnBlockTime < sorted[j].BurnBlockTime
	})
	return sorted
}

// meanStdDev computes the mean and population standard deviation.
func meanStdDev(values []float64) (float64, float64) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(variance / float64(len(values)))
}
