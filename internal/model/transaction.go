package model

import (
	"fmt"
	"time"
)

// TransactionStatus is the outcome of a submission attempt.
type TransactionStatus string

const (
	TransactionStatusSubmitted TransactionStatus = "submitted"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is one journal entry for a submission attempt.
type Transaction struct {
	ID          string            `json:"id"`
	Agent       string            `json:"agent"`
	TxID        string            `json:"txId,omitempty"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Asset       Asset             `json:"asset"`
	Amount      string            `json:"amount"`
	RawAmount   string            `json:"rawAmount"`
	Network     string            `json:"network"`
	Status      TransactionStatus `json:"status"`
	Error       string            `json:"error,omitempty"`
	ExplorerURL string            `json:"explorerUrl,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// LogResponse represents response for GET /wallet/transactions
type LogResponse struct {
	Address      string        `json:"address"`
	Agent        string        `json:"agent"`
	TotalSentETH string        `json:"total_sent_ETH"`
	TotalSentUSD string        `json:"total_sent_USDC"`
	Transactions []Transaction `json:"transactions"`
}

// LogRequest represents filter parameters for the transaction journal.
type LogRequest struct {
	Status *TransactionStatus `form:"status"`
	TxID   *string            `form:"txId"`
	From   *time.Time         `form:"from"`
	To     *time.Time         `form:"to"`
	Asset  *Asset             `form:"asset"`
}

// Validate validates LogRequest filter parameters.
func (r *LogRequest) Validate() error {
	if r.Status != nil && *r.Status != TransactionStatusSubmitted && *r.Status != TransactionStatusFailed {
		return fmt.Errorf("status must be submitted or failed")
	}
	if r.Asset != nil && *r.Asset != AssetNative && *r.Asset != AssetToken {
		return fmt.Errorf("asset must be ETH or USDC")
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return fmt.Errorf("to date must be after or equal to from date")
	}
	return nil
}

// Match reports whether tx passes every set filter.
func (r *LogRequest) Match(tx Transaction) bool {
	if r.Status != nil && *r.Status != tx.Status {
		return false
	}
	if r.TxID != nil && *r.TxID != tx.TxID {
		return false
	}
	if r.Asset != nil && *r.Asset != tx.Asset {
		return false
	}
	if r.From != nil && tx.Timestamp.Before(*r.From) {
		return false
	}
	if r.To != nil && tx.Timestamp.After(*r.To) {
		return false
	}
	return true
}

// AgentReport aggregates one agent's journal for a day.
type AgentReport struct {
	Agent     string `json:"agent"`
	Count     int    `json:"count"`
	Submitted int    `json:"submitted"`
	Failed    int    `json:"failed"`
	SentETH   string `json:"sent_ETH"`
	SentUSDC  string `json:"sent_USDC"`
}

// DailyReport aggregates all agents for a day.
type DailyReport struct {
	Date      string        `json:"date"`
	Total     int           `json:"total"`
	Submitted int           `json:"submitted"`
	Failed    int           `json:"failed"`
	Agents    []AgentReport `json:"agents"`
}
