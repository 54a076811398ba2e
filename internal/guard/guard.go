package guard

import (
	"math/big"

	"github.com/AlexZinkM/cdp-wallet/internal/common"
	"github.com/AlexZinkM/cdp-wallet/internal/erc20"
	"github.com/AlexZinkM/cdp-wallet/internal/model"
	"github.com/AlexZinkM/cdp-wallet/internal/walleterr"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Policy is the transfer policy applied by the guard.
// Min and Max bound token transfers in raw units, inclusive.
type Policy struct {
	Token ethcommon.Address
	Min   *big.Int
	Max   *big.Int
}

// Guard validates transfer requests before anything is signed.
type Guard struct {
	policy Policy
}

// New creates a guard for the given policy.
func New(policy Policy) *Guard {
	return &Guard{policy: policy}
}

// CheckRequest runs the checks that need no chain state: recipient, amount
// and range. It returns the amount in raw units.
func (g *Guard) CheckRequest(req model.TransferRequest) (*big.Int, error) {
	if !common.IsAddress(req.Recipient) {
		return nil, walleterr.Newf(walleterr.KindInvalidRecipient, "invalid recipient address %q", req.Recipient)
	}

	decimals := req.Asset.Decimals()
	amount, err := common.ParseUnits(req.Amount, decimals)
	if err != nil {
		return nil, walleterr.Wrap(walleterr.KindInvalidAmount, "invalid amount", err)
	}
	if amount.Sign() <= 0 {
		return nil, walleterr.Newf(walleterr.KindInvalidAmount, "amount must be positive, got %q", req.Amount)
	}

	if req.Asset == model.AssetToken {
		if amount.Cmp(g.policy.Min) < 0 || amount.Cmp(g.policy.Max) > 0 {
			return nil, walleterr.Newf(walleterr.KindAmountOutOfRange,
				"transfer amount %s %s is out of range: allowed %s - %s %s",
				common.FormatUnits(amount, decimals), req.Asset,
				common.FormatUnits(g.policy.Min, decimals), common.FormatUnits(g.policy.Max, decimals), req.Asset)
		}
	}
	return amount, nil
}

// Validate checks the request against the policy and the source account's own
// balance, failing on the first violation: recipient, amount, range, funds.
// On success it returns the call payload ready for submission.
func (g *Guard) Validate(req model.TransferRequest, balance model.Balance) (*model.CallPayload, error) {
	amount, err := g.CheckRequest(req)
	if err != nil {
		return nil, err
	}
	decimals := req.Asset.Decimals()

	if balance.Asset != req.Asset {
		return nil, walleterr.Newf(walleterr.KindInternal, "balance is for %s, transfer is for %s", balance.Asset, req.Asset)
	}
	available := balance.Raw
	if available == nil {
		available = new(big.Int)
	}
	if available.Cmp(amount) < 0 {
		return nil, walleterr.Newf(walleterr.KindInsufficientBalance,
			"insufficient %s balance: required %s, available %s",
			req.Asset, common.FormatUnits(amount, decimals), common.FormatUnits(available, decimals))
	}

	to := ethcommon.HexToAddress(req.Recipient)
	if req.Asset == model.AssetNative {
		return &model.CallPayload{Target: to, Value: amount}, nil
	}

	data, err := erc20.EncodeTransfer(to, amount)
	if err != nil {
		return nil, walleterr.Wrap(walleterr.KindInvalidAmount, "failed to encode transfer", err)
	}
	return &model.CallPayload{Target: g.policy.Token, Data: data, Value: new(big.Int)}, nil
}
