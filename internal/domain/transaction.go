// Package domain defines the core types shared across the stacklens service.
package domain

import "time"

// MicroUnitsPerSTX converts the chain's smallest unit (microSTX) to the
// display unit. All wire amounts arrive as smallest-unit integers; every
// derived metric operates on the divided value.
const MicroUnitsPerSTX = 1_000_000

// MicroToSTX converts a smallest-unit amount to STX.
func MicroToSTX(micro int64) float64 {
	return float64(micro) / MicroUnitsPerSTX
}

// TxType categorizes a confirmed transaction.
type TxType string

const (
	TxTypeTokenTransfer TxType = "token_transfer"
	TxTypeContractCall  TxType = "contract_call"
	TxTypeSmartContract TxType = "smart_contract"
	TxTypeCoinbase      TxType = "coinbase"
)

// Transaction is a confirmed on-chain transaction as seen by the analytics
// engine. Only token transfers carry a recipient and amount; the fee is
// charged to the sender on every transaction type.
type Transaction struct {
	ID               string `json:"tx_id"`
	Type             TxType `json:"tx_type"`
	BurnBlockTime    int64  `json:"burn_block_time"` // seconds since epoch
	SenderAddress    string `json:"sender_address"`
	RecipientAddress string `json:"recipient_address,omitempty"`
	AmountMicro      int64  `json:"amount_micro"`
	FeeMicro         int64  `json:"fee_micro"`
}

// Time returns the chain-confirmation time.
func (t Transaction) Time() time.Time {
	return time.Unix(t.BurnBlockTime, 0)
}

// IsTokenTransfer reports whether the transaction moves STX between accounts.
func (t Transaction) IsTokenTransfer() bool {
	return t.Type == TxTypeTokenTransfer
}

// IsSelfTransfer reports whether sender and recipient are the same account.
func (t Transaction) IsSelfTransfer() bool {
	return t.RecipientAddress != "" && t.SenderAddress == t.RecipientAddress
}

// Amount returns the transferred value in STX.
func (t Transaction) Amount() float64 {
	return MicroToSTX(t.AmountMicro)
}

// Fee returns the sender-paid fee in STX.
func (t Transaction) Fee() float64 {
	return MicroToSTX(t.FeeMicro)
}
