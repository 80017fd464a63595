package domain

// AnalyticsReport is the full set of wallet metrics derived from one
// aggregation pass. A report is either fully populated or not produced at
// all; CurrentBalance may be a known-degraded 0 when the balance source
// fails.
type AnalyticsReport struct {
	Address               string  `json:"address"`
	WalletAgeDays         int     `json:"walletAgeDays"`
	CurrentBalance        float64 `json:"currentBalance"`
	MaxHistoricalBalance  float64 `json:"maxHistoricalBalance"`
	MonthlyAverageTxCount float64 `json:"monthlyAverageTxCount"`
	VolatilityPercent     float64 `json:"volatilityPercent"`
	WeekendActivity       float64 `json:"weekendActivityPercent"`
	LateNightActivity     float64 `json:"lateNightActivityPercent"`

	// SampleSize and HistoryTruncated describe the bounded page the
	// metrics were computed from. When HistoryTruncated is true the wallet
	// likely has older transactions the fetch did not see, so WalletAgeDays
	// is a lower bound rather than the true account age.
	SampleSize       int  `json:"sampleSize"`
	HistoryTruncated bool `json:"historyTruncated"`
}
