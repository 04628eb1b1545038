package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paymesh/paymesh-server/internal/config"
	"github.com/paymesh/paymesh-server/starknet"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/account"
	"github.com/NethermindEth/starknet.go/rpc"
)

// Cairo 1 accounts use the new __execute__ calldata encoding
const cairoVersion = 2

// invoker is the part of *account.Account the client needs
type invoker interface {
	BuildAndSendInvokeTxn(ctx context.Context, functionCalls []rpc.InvokeFunctionCall, multiplier float64) (*rpc.AddInvokeTransactionResponse, error)
}

var _ starknet.Submitter = (*StarknetClient)(nil)

// StarknetClient is a client for submitting invoke transactions through Starknet JSON-RPC
type StarknetClient struct {
	account       invoker
	timeout       time.Duration
	feeMultiplier float64
}

// NewStarknetClient connects to the configured RPC endpoint and builds the signing account.
// It fails if the endpoint serves a different chain than the signer targets.
func NewStarknetClient(ctx context.Context, cfg *config.Config, signer *starknet.Signer) (*StarknetClient, error) {
	provider, err := rpc.NewProvider(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create Starknet provider: %w", err)
	}

	chainCtx, cancel := context.WithTimeout(ctx, cfg.RPCTimeout)
	defer cancel()

	chainID, err := provider.ChainID(chainCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	if chainID != signer.ChainID {
		return nil, fmt.Errorf("RPC endpoint serves %s but CHAIN_ID is %s", chainID, signer.ChainID)
	}

	// The keystore is keyed by an opaque label; the account only uses it to look the key up
	keyLabel := signer.AccountAddress.String()
	ks := account.NewMemKeystore()
	ks.Put(keyLabel, signer.PrivateKey())

	acc, err := account.NewAccount(provider, signer.AccountAddress, keyLabel, ks, cairoVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to create Starknet account: %w", err)
	}

	return newStarknetClient(acc, cfg.RPCTimeout, cfg.FeeMultiplier), nil
}

func newStarknetClient(inv invoker, timeout time.Duration, feeMultiplier float64) *StarknetClient {
	return &StarknetClient{
		account:       inv,
		timeout:       timeout,
		feeMultiplier: feeMultiplier,
	}
}

// Submit signs calls as one INVOKE v3 transaction and sends it.
// It returns the transaction hash once the node accepts it; it does not wait for inclusion.
// Cancelling ctx after the transaction was broadcast does not withdraw it.
func (c *StarknetClient) Submit(ctx context.Context, calls []rpc.InvokeFunctionCall) (*felt.Felt, error) {
	if len(calls) == 0 {
		return nil, errors.New("no calls to submit")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.account.BuildAndSendInvokeTxn(ctx, calls, c.feeMultiplier)
	if err != nil {
		return nil, fmt.Errorf("failed to send invoke transaction: %w", err)
	}
	if resp == nil || resp.TransactionHash == nil {
		return nil, errors.New("node returned no transaction hash")
	}

	return resp.TransactionHash, nil
}
