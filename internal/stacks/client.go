// Package stacks implements the Hiro blockchain API client used to fetch
// per-address transaction history and balances.
package stacks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"stacklens/internal/domain"
	"stacklens/pkg/config"
	"stacklens/pkg/errors"
	"stacklens/pkg/logger"
)

// Client talks to a Hiro-compatible Stacks API. The target address is an
// explicit parameter on every call; the client holds no per-request state
// and is safe for concurrent use.
type Client struct {
	client     *http.Client
	baseURL    string
	pageLimit  int
	maxRetries int
	backoff    time.Duration
	logger     logger.Logger
}

// NewClient constructs a Client from the Stacks section of the config.
func NewClient(cfg config.StacksConfig, log logger.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:    cfg.APIBaseURL,
		pageLimit:  cfg.TxPageLimit,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
		logger:     log,
	}
}

// PageLimit returns the configured history page size. The fetch takes one
// bounded page of most-recent transactions, so a full page means the wallet
// likely has older history the caller never sees.
func (c *Client) PageLimit() int {
	return c.pageLimit
}

// transactionsResponse mirrors /extended/v1/address/{addr}/transactions.
type transactionsResponse struct {
	Limit   int       `json:"limit"`
	Offset  int       `json:"offset"`
	Total   int       `json:"total"`
	Results []txEntry `json:"results"`
}

type txEntry struct {
	TxID          string           `json:"tx_id"`
	TxType        string           `json:"tx_type"`
	BurnBlockTime int64            `json:"burn_block_time"`
	SenderAddress string           `json:"sender_address"`
	FeeRate       string           `json:"fee_rate"`
	TokenTransfer *tokenTransferTx `json:"token_transfer"`
}

type tokenTransferTx struct {
	RecipientAddress string `json:"recipient_address"`
	Amount           string `json:"amount"`
}

// balancesResponse mirrors /extended/v1/address/{addr}/balances.
type balancesResponse struct {
	STX struct {
		Balance string `json:"balance"`
	} `json:"stx"`
}

// TransactionHistory fetches the most recent page of confirmed transactions
// for the address. A source that reports no transactions yields an empty
// set, not an error. Network errors, non-2xx responses, and undecodable
// payloads surface as ErrSourceUnavailable after bounded retries.
func (c *Client) TransactionHistory(ctx context.Context, address string) ([]domain.Transaction, error) {
	url := fmt.Sprintf("%s/extended/v1/address/%s/transactions?limit=%d", c.baseURL, address, c.pageLimit)

	var payload transactionsResponse
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, errors.Wrap(errors.ErrSourceUnavailable, err.Error())
	}

	txs := make([]domain.Transaction, 0, len(payload.Results))
	for _, entry := range payload.Results {
		tx, err := entry.toDomain()
		if err != nil {
			return nil, errors.Wrap(errors.ErrSourceUnavailable, err.Error())
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// CurrentBalance fetches the live STX balance in display units. Failures
// surface as ErrBalanceUnavailable; callers degrade to 0 rather than
// aborting the rest of the analytics pipeline.
func (c *Client) CurrentBalance(ctx context.Context, address string) (float64, error) {
	url := fmt.Sprintf("%s/extended/v1/address/%s/balances", c.baseURL, address)

	var payload balancesResponse
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return 0, errors.Wrap(errors.ErrBalanceUnavailable, err.Error())
	}

	if payload.STX.Balance == "" {
		return 0, errors.Wrap(errors.ErrBalanceUnavailable, "balance field missing from response")
	}

	micro, err := decimal.NewFromString(payload.STX.Balance)
	if err != nil {
		return 0, errors.Wrap(errors.ErrBalanceUnavailable, fmt.Sprintf("malformed balance %q", payload.STX.Balance))
	}

	return micro.Div(decimal.NewFromInt(domain.MicroUnitsPerSTX)).InexactFloat64(), nil
}

// getJSON performs a GET with bounded retry on transient failures. Only the
// network layer and 5xx responses are retried; a malformed body is a schema
// problem that a retry will not fix.
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
			c.logger.Warn("Retrying Stacks API request", map[string]interface{}{
				"url":     url,
				"attempt": attempt,
			})
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			lastErr = fmt.Errorf("stacks api returned status %d", resp.StatusCode)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("stacks api returned status %d", resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(dest)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	return lastErr
}

func (e txEntry) toDomain() (domain.Transaction, error) {
	fee, err := parseMicro(e.FeeRate)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("tx %s: malformed fee_rate %q", e.TxID, e.FeeRate)
	}

	tx := domain.Transaction{
		ID:            e.TxID,
		Type:          domain.TxType(e.TxType),
		BurnBlockTime: e.BurnBlockTime,
		SenderAddress: e.SenderAddress,
		FeeMicro:      fee,
	}

	if e.TokenTransfer != nil {
		amount, err := parseMicro(e.TokenTransfer.Amount)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("tx %s: malformed amount %q", e.TxID, e.TokenTransfer.Amount)
		}
		tx.RecipientAddress = e.TokenTransfer.RecipientAddress
		tx.AmountMicro = amount
	}

	return tx, nil
}

// parseMicro reads a smallest-unit integer off the wire. Absent fields
// count as zero, matching the source's own optional encoding.
func parseMicro(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
