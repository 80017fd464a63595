package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stacklens/internal/domain"
)

const addr = "ST23JSMGR5933QJ329PKPNNQJV6QG8Z9D33QBYDNX"
const peer = "ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG"

// 2024-01-01 00:00:00 UTC, a Monday.
const t0 = int64(1704067200)

// 2024-01-06 00:00:00 UTC, a Saturday.
const saturdayMidnight = int64(1704499200)

func fixedEngine(now time.Time) *Engine {
	return NewEngineWithClock(func() time.Time { return now }, time.UTC)
}

func received(ts int64, amountMicro int64) domain.Transaction {
	return domain.Transaction{
		ID:               "0xin",
		Type:             domain.TxTypeTokenTransfer,
		BurnBlockTime:    ts,
		SenderAddress:    peer,
		RecipientAddress: addr,
		AmountMicro:      amountMicro,
	}
}

func sent(ts int64, amountMicro, feeMicro int64) domain.Transaction {
	return domain.Transaction{
		ID:               "0xout",
		Type:             domain.TxTypeTokenTransfer,
		BurnBlockTime:    ts,
		SenderAddress:    addr,
		RecipientAddress: peer,
		AmountMicro:      amountMicro,
		FeeMicro:         feeMicro,
	}
}

func contractCall(ts int64, sender string, feeMicro int64) domain.Transaction {
	return domain.Transaction{
		ID:            "0xcall",
		Type:          domain.TxTypeContractCall,
		BurnBlockTime: ts,
		SenderAddress: sender,
		FeeMicro:      feeMicro,
	}
}

func TestEmptyHistoryDefaults(t *testing.T) {
	e := fixedEngine(time.Unix(t0, 0))
	var txs []domain.Transaction

	assert.Equal(t, 0, e.WalletAgeDays(txs))
	assert.Zero(t, e.MaxHistoricalBalance(txs, addr))
	assert.Zero(t, e.MonthlyAverage(txs))
	assert.Zero(t, e.Volatility(txs, addr))
	assert.Zero(t, e.WeekendActivity(txs))
	assert.Zero(t, e.LateNightActivity(txs))
}

func TestWalletAgeDays(t *testing.T) {
	e := fixedEngine(time.Unix(t0, 0).Add(10 * 24 * time.Hour))

	txs := []domain.Transaction{
		received(t0+3600, 1_000_000),
		received(t0, 1_000_000), // oldest, unsorted on purpose
		received(t0+7200, 1_000_000),
	}

	assert.Equal(t, 10, e.WalletAgeDays(txs))
}

func TestWalletAgeDaysFloorsPartialDays(t *testing.T) {
	e := fixedEngine(time.Unix(t0, 0).Add(10*24*time.Hour + 23*time.Hour))

	txs := []domain.Transaction{received(t0, 1_000_000)}

	assert.Equal(t, 10, e.WalletAgeDays(txs))
}

func TestMaxHistoricalBalance(t *testing.T) {
	e := NewEngine()

	txs := []domain.Transaction{
		sent(t0+100, 30_000_000, 1_000_000), // out of order on purpose
		received(t0, 100_000_000),
	}

	// Receives 100, then sends 30 plus a 1 STX fee: peak is 100.
	assert.InDelta(t, 100.0, e.MaxHistoricalBalance(txs, addr), 1e-9)
}

func TestMaxHistoricalBalanceSkipsSelfTransfers(t *testing.T) {
	e := NewEngine()

	selfTransfer := domain.Transaction{
		ID:               "0xself",
		Type:             domain.TxTypeTokenTransfer,
		BurnBlockTime:    t0,
		SenderAddress:    addr,
		RecipientAddress: addr,
		AmountMicro:      100_000_000,
		FeeMicro:         1_000_000,
	}
	txs := []domain.Transaction{
		selfTransfer,
		contractCall(t0+100, peer, 500_000),
	}

	assert.Zero(t, e.MaxHistoricalBalance(txs, addr))
}

func TestMaxHistoricalBalanceChargesFeeOnNonTransfers(t *testing.T) {
	e := NewEngine()

	txs := []domain.Transaction{
		received(t0, 10_000_000),
		contractCall(t0+100, addr, 500_000),
	}

	assert.InDelta(t, 10.0, e.MaxHistoricalBalance(txs, addr), 1e-9)

	// The running balance after the fee is 9.5; the peak never drops below it.
	assert.GreaterOrEqual(t, e.MaxHistoricalBalance(txs, addr), 9.5)
}

func TestMonthlyAverage(t *testing.T) {
	e := fixedEngine(time.Unix(t0, 0).Add(30 * 24 * time.Hour))

	var txs []domain.Transaction
	for i := 0; i < 10; i++ {
		txs = append(txs, received(t0+int64(i), 1_000_000))
	}

	// 10 transactions over 30 days is 10 per 30-day window.
	assert.InDelta(t, 10.0, e.MonthlyAverage(txs), 1e-6)
}

func TestMonthlyAverageZeroAge(t *testing.T) {
	e := fixedEngine(time.Unix(t0, 0))

	txs := []domain.Transaction{received(t0, 1_000_000)}

	assert.Zero(t, e.MonthlyAverage(txs))
}

func TestVolatility(t *testing.T) {
	e := NewEngine()

	txs := []domain.Transaction{
		received(t0, 100_000_000),
		contractCall(t0+50, peer, 500_000), // not a transfer, no sample
		received(t0+100, 50_000_000),
	}

	// Samples are [100, 150]: mean 125, population stddev 25 -> 20%.
	assert.InDelta(t, 20.0, e.Volatility(txs, addr), 1e-6)
}

func TestVolatilityNegativeMeanReturnsStdDev(t *testing.T) {
	e := NewEngine()

	txs := []domain.Transaction{
		sent(t0, 10_000_000, 0),
		sent(t0+100, 10_000_000, 0),
	}

	// Samples are [-10, -20]: mean -15, stddev 5, returned directly.
	assert.InDelta(t, 5.0, e.Volatility(txs, addr), 1e-6)
}

func TestVolatilityFewSamples(t *testing.T) {
	e := NewEngine()

	assert.Zero(t, e.Volatility([]domain.Transaction{received(t0, 1_000_000)}, addr))

	// Two transactions but only one transfer sample still yields 0.
	txs := []domain.Transaction{
		received(t0, 1_000_000),
		contractCall(t0+100, peer, 500_000),
	}
	assert.Zero(t, e.Volatility(txs, addr))
}

func TestVolatilityNonNegative(t *testing.T) {
	e := NewEngine()

	txs := []domain.Transaction{
		received(t0, 100_000_000),
		sent(t0+100, 80_000_000, 1_000_000),
		received(t0+200, 5_000_000),
		sent(t0+300, 20_000_000, 1_000_000),
	}

	assert.GreaterOrEqual(t, e.Volatility(txs, addr), 0.0)
}

func TestSaturdayMidnightIsWeekendAndLateNight(t *testing.T) {
	e := fixedEngine(time.Unix(saturdayMidnight, 0).Add(24 * time.Hour))

	txs := []domain.Transaction{received(saturdayMidnight, 1_000_000)}

	assert.InDelta(t, 100.0, e.WeekendActivity(txs), 1e-9)
	assert.InDelta(t, 100.0, e.LateNightActivity(txs), 1e-9)
}

func TestActivityPercentagesStayInRange(t *testing.T) {
	e := fixedEngine(time.Unix(t0, 0).Add(30 * 24 * time.Hour))

	txs := []domain.Transaction{
		received(t0, 1_000_000),              // Monday 00:00
		received(t0+12*3600, 1_000_000),      // Monday noon
		received(saturdayMidnight, 1_000_000),
	}

	weekend := e.WeekendActivity(txs)
	lateNight := e.LateNightActivity(txs)

	assert.GreaterOrEqual(t, weekend, 0.0)
	assert.LessOrEqual(t, weekend, 100.0)
	assert.GreaterOrEqual(t, lateNight, 0.0)
	assert.LessOrEqual(t, lateNight, 100.0)
}

func TestOrderIndependenceAndNonMutation(t *testing.T) {
	e := fixedEngine(time.Unix(t0, 0).Add(30 * 24 * time.Hour))

	ordered := []domain.Transaction{
		received(t0, 100_000_000),
		sent(t0+100, 30_000_000, 1_000_000),
		received(t0+200, 5_000_000),
	}
	shuffled := []domain.Transaction{ordered[2], ordered[0], ordered[1]}
	snapshot := make([]domain.Transaction, len(shuffled))
	copy(snapshot, shuffled)

	assert.Equal(t, e.MaxHistoricalBalance(ordered, addr), e.MaxHistoricalBalance(shuffled, addr))
	assert.Equal(t, e.Volatility(ordered, addr), e.Volatility(shuffled, addr))
	assert.Equal(t, e.WalletAgeDays(ordered), e.WalletAgeDays(shuffled))
	assert.Equal(t, e.MonthlyAverage(ordered), e.MonthlyAverage(shuffled))

	// Calls never reorder the caller's slice.
	assert.Equal(t, snapshot, shuffled)

	// And repeating a call yields the same answer.
	assert.Equal(t, e.Volatility(shuffled, addr), e.Volatility(shuffled, addr))
}
