package starknet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paymesh/paymesh-server/internal/logger"
	"github.com/paymesh/paymesh-server/internal/metrics"
	"github.com/paymesh/paymesh-server/internal/model"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/NethermindEth/starknet.go/utils"
)

// PayEntryPoint is the contract function that splits the payment to a member
const PayEntryPoint = "pay"

// Submitter signs and broadcasts invoke transactions.
// It returns once the node has accepted the transaction, not at finality.
type Submitter interface {
	Submit(ctx context.Context, calls []rpc.InvokeFunctionCall) (*felt.Felt, error)
}

// Relay turns a member address into a pay call on the configured contract
type Relay struct {
	submitter Submitter
	contract  *felt.Felt
	log       logger.Logger
	metrics   metrics.Recorder
}

// NewRelay creates a Relay for the given contract address.
// An invalid contract address is a startup error.
func NewRelay(submitter Submitter, contractAddress string, log logger.Logger, rec metrics.Recorder) (*Relay, error) {
	contract, err := ParseAddress(contractAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid contract address: %w", err)
	}
	if log == nil {
		log = logger.NoopLogger{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Relay{
		submitter: submitter,
		contract:  contract,
		log:       log,
		metrics:   rec,
	}, nil
}

// NewPayCall builds the call descriptor for contract.pay(member)
func NewPayCall(contract, member *felt.Felt) rpc.InvokeFunctionCall {
	return rpc.InvokeFunctionCall{
		ContractAddress: contract,
		FunctionName:    PayEntryPoint,
		CallData:        []*felt.Felt{member},
	}
}

// PayMember submits one pay transaction for memberAddress.
// Errors wrap ErrInvalidAddress or ErrAddressOutOfRange when nothing was submitted.
func (r *Relay) PayMember(ctx context.Context, memberAddress string) (*model.PayResult, error) {
	member, err := ParseAddress(memberAddress)
	if err != nil {
		return nil, err
	}

	call := NewPayCall(r.contract, member)
	fields := map[string]any{
		"member":   member.String(),
		"contract": r.contract.String(),
		"selector": utils.GetSelectorFromNameFelt(PayEntryPoint).String(),
	}

	start := time.Now()
	txHash, err := r.submitter.Submit(ctx, []rpc.InvokeFunctionCall{call})
	elapsed := time.Since(start)
	r.metrics.ObserveLatency(metrics.OperationSubmit, elapsed)
	fields["duration"] = elapsed.String()

	if err == nil && txHash == nil {
		err = errors.New("node returned no transaction hash")
	}
	if err != nil {
		fields["error"] = err
		r.log.Error("pay submission failed", fields)
		return nil, fmt.Errorf("failed to submit pay transaction: %w", err)
	}

	fields["tx_hash"] = txHash.String()
	r.log.Info("pay submitted", fields)

	return &model.PayResult{TxHash: txHash.String()}, nil
}
