package model

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// TransferRequest is a requested outgoing transfer in human units.
type TransferRequest struct {
	Recipient string
	Amount    string
	Asset     Asset
}

// CallPayload is the fully formed call handed to the submitter.
// Token transfers carry Data and a zero Value; native transfers carry
// an empty Data and the raw amount in Value.
type CallPayload struct {
	Target ethcommon.Address
	Data   []byte
	Value  *big.Int
}

// PayRequest represents request for POST /wallet/pay/...
type PayRequest struct {
	ToAddress string `json:"toAddress"`
	Amount    string `json:"amount"`
}

// PayResponse represents response for POST /wallet/pay/...
type PayResponse struct {
	TxID        string `json:"txId"`
	ExplorerURL string `json:"explorerUrl"`
}

// CheckResponse represents response for POST /wallet/check
type CheckResponse struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Asset     Asset  `json:"asset"`
	Amount    string `json:"amount"`
	RawAmount string `json:"rawAmount"`
	Balance   string `json:"balance"`
	Target    string `json:"target"`
	Data      string `json:"data"`
	Value     string `json:"value"`
}
