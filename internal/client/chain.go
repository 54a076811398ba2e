package client

import (
	"context"

	"github.com/AlexZinkM/cdp-wallet/internal/walleterr"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// DialChain connects to the read-only JSON-RPC endpoint and checks that it
// serves the expected chain.
func DialChain(ctx context.Context, rpcURL string, expectedChainID int64, logger *zap.Logger) (*ethclient.Client, error) {
	ec, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, walleterr.Wrap(walleterr.KindConfiguration, "failed to connect to RPC "+rpcURL, err)
	}

	chainID, err := ec.ChainID(ctx)
	if err != nil {
		ec.Close()
		return nil, walleterr.Wrap(walleterr.KindTransport, "failed to get chain id", err)
	}
	if chainID.Int64() != expectedChainID {
		ec.Close()
		return nil, walleterr.Newf(walleterr.KindConfiguration,
			"RPC %s serves chain %s, expected %d", rpcURL, chainID, expectedChainID)
	}

	logger.Info("Connected to chain RPC",
		zap.String("rpc", rpcURL),
		zap.Int64("chain_id", expectedChainID))
	return ec, nil
}
