package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paymesh/paymesh-server/starknet"

	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/NethermindEth/starknet.go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoker struct {
	calls      atomic.Int32
	multiplier float64
	resp       *rpc.AddInvokeTransactionResponse
	err        error
	block      bool
}

func (f *fakeInvoker) BuildAndSendInvokeTxn(ctx context.Context, _ []rpc.InvokeFunctionCall, multiplier float64) (*rpc.AddInvokeTransactionResponse, error) {
	f.calls.Add(1)
	f.multiplier = multiplier
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.resp, f.err
}

func payCall(t *testing.T) []rpc.InvokeFunctionCall {
	t.Helper()
	contract, err := utils.HexToFelt("0x02cc3107900daff156c0888eccbcd901500f9bf440ab694e1eecc14f4641d1dc")
	require.NoError(t, err)
	member, err := utils.HexToFelt("0x04a3f1b3b62e4c8b3c1b6a1f0d2c9e8d7b6a5f4e3d2c1b0a9f8e7d6c5b4a3f2e")
	require.NoError(t, err)
	return []rpc.InvokeFunctionCall{starknet.NewPayCall(contract, member)}
}

func TestSubmitReturnsTransactionHash(t *testing.T) {
	hash, err := utils.HexToFelt("0xabc")
	require.NoError(t, err)
	inv := &fakeInvoker{resp: &rpc.AddInvokeTransactionResponse{TransactionHash: hash}}
	c := newStarknetClient(inv, time.Second, 1.5)

	got, err := c.Submit(context.Background(), payCall(t))
	require.NoError(t, err)
	assert.Equal(t, "0xabc", got.String())
	assert.Equal(t, int32(1), inv.calls.Load())
	assert.Equal(t, 1.5, inv.multiplier)
}

func TestSubmitWrapsRPCError(t *testing.T) {
	rpcErr := errors.New("Account validation failed")
	c := newStarknetClient(&fakeInvoker{err: rpcErr}, time.Second, 1.5)

	_, err := c.Submit(context.Background(), payCall(t))
	assert.ErrorIs(t, err, rpcErr)
}

func TestSubmitEnforcesTimeout(t *testing.T) {
	inv := &fakeInvoker{block: true}
	c := newStarknetClient(inv, 20*time.Millisecond, 1.5)

	start := time.Now()
	_, err := c.Submit(context.Background(), payCall(t))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSubmitHonoursCallerCancellation(t *testing.T) {
	inv := &fakeInvoker{block: true}
	c := newStarknetClient(inv, time.Minute, 1.5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Submit(ctx, payCall(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmitRejectsEmptyResponses(t *testing.T) {
	c := newStarknetClient(&fakeInvoker{resp: &rpc.AddInvokeTransactionResponse{}}, time.Second, 1.5)
	_, err := c.Submit(context.Background(), payCall(t))
	assert.Error(t, err)

	inv := &fakeInvoker{}
	c = newStarknetClient(inv, time.Second, 1.5)
	_, err = c.Submit(context.Background(), nil)
	assert.Error(t, err)
	assert.Equal(t, int32(0), inv.calls.Load())
}
