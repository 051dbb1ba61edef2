package scheduler

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	"github.com/tokenforge/tokenforge-backend/pkg/chain"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

// TransferExecutor runs one token transfer to completion and returns the
// confirmed transaction hash.
type TransferExecutor interface {
	ExecuteTransfer(ctx context.Context, payment types.RecurringPayment) (string, error)
}

// ChainTransferExecutor executes transfers through the chain executor using
// the operator wallet.
type ChainTransferExecutor struct {
	executor *chain.Executor
}

func NewChainTransferExecutor(executor *chain.Executor) *ChainTransferExecutor {
	return &ChainTransferExecutor{executor: executor}
}

// ExecuteTransfer drives simulate, sign, submit and confirm for one payment.
// A timeout gets one extra status check by hash before it is surfaced, since
// the transfer may have confirmed while the poller was waiting.
func (e *ChainTransferExecutor) ExecuteTransfer(ctx context.Context, payment types.RecurringPayment) (string, error) {
	amount, err := chain.ToBaseUnits(payment.Amount, payment.TokenDecimals)
	if err != nil {
		return "", err
	}

	data, err := chain.PackTransfer(common.HexToAddress(payment.Recipient), amount)
	if err != nil {
		return "", err
	}

	token := common.HexToAddress(payment.TokenAddress)
	gasLimit, err := e.executor.Simulate(ctx, ethereum.CallMsg{
		From: e.executor.Signer().Address(),
		To:   &token,
		Data: data,
	})
	if err != nil {
		return "", err
	}

	tx, err := e.executor.BuildTx(ctx, token, nil, gasLimit, data)
	if err != nil {
		return "", err
	}

	signed, err := e.executor.Sign(ctx, tx)
	if err != nil {
		return "", err
	}

	hash, err := e.executor.Submit(ctx, signed)
	if err != nil {
		return "", err
	}

	deadline := time.Now().Add(e.executor.ConfirmTimeout())
	status, err := e.executor.PollStatus(ctx, hash, deadline)
	if err != nil {
		if apperrors.IsUnknownOutcome(err) {
			if status, checkErr := e.executor.CheckStatus(ctx, hash); checkErr == nil && status != chain.TxStatusPending {
				return finishTransfer(hash, status)
			}
		}
		return "", err
	}
	return finishTransfer(hash, status)
}

func finishTransfer(hash common.Hash, status chain.TxStatus) (string, error) {
	if status == chain.TxStatusFailed {
		return "", apperrors.Newf(apperrors.CodeTransactionFailed, "transfer %s reverted", hash.Hex())
	}
	return hash.Hex(), nil
}
