package chain

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
)

// TxStatus is the outcome of a confirmation poll.
type TxStatus string

const (
	TxStatusPending TxStatus = "pending"
	TxStatusSuccess TxStatus = "success"
	TxStatusFailed  TxStatus = "failed"
)

const (
	defaultPollInterval   = 3 * time.Second
	defaultConfirmTimeout = 90 * time.Second
)

// Executor drives a transaction through simulate, sign, submit and confirm.
// It is the only component that talks to the ledger; callers get classified
// app errors back and decide their own retry policy.
type Executor struct {
	client         EthClient
	signer         Signer
	logger         logging.Logger
	pollInterval   time.Duration
	confirmTimeout time.Duration
}

type ExecutorOption func(*Executor)

func WithPollInterval(interval time.Duration) ExecutorOption {
	return func(e *Executor) { e.pollInterval = interval }
}

func WithConfirmTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) { e.confirmTimeout = timeout }
}

func NewExecutor(client EthClient, signer Signer, logger logging.Logger, opts ...ExecutorOption) *Executor {
	executor := &Executor{
		client:         client,
		signer:         signer,
		logger:         logger,
		pollInterval:   defaultPollInterval,
		confirmTimeout: defaultConfirmTimeout,
	}
	for _, opt := range opts {
		opt(executor)
	}
	return executor
}

func (e *Executor) Signer() Signer {
	return e.signer
}

func (e *Executor) ConfirmTimeout() time.Duration {
	return e.confirmTimeout
}

// Simulate estimates gas for the call. A failed simulation means the
// parameters are invalid, not that the network hiccuped, so the error is
// SIMULATION_FAILED and is not retryable.
func (e *Executor) Simulate(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	gas, err := e.client.EstimateGas(ctx, msg)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeSimulationFailed, "transaction simulation failed")
	}
	return gas, nil
}

// BuildTx assembles an unsigned transaction from the signer's account.
func (e *Executor) BuildTx(ctx context.Context, to common.Address, value *big.Int, gasLimit uint64, data []byte) (*ethtypes.Transaction, error) {
	nonce, err := e.client.PendingNonceAt(ctx, e.signer.Address())
	if err != nil {
		return nil, classifyRPCError(err, "failed to fetch account nonce")
	}

	gasPrice, err := e.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, classifyRPCError(err, "failed to fetch gas price")
	}

	return ethtypes.NewTransaction(nonce, to, value, gasLimit, gasPrice, data), nil
}

// Sign requests a signature from the wallet boundary. Anything the signer
// refuses is WALLET_REJECTED and terminal.
func (e *Executor) Sign(ctx context.Context, tx *ethtypes.Transaction) (*ethtypes.Transaction, error) {
	chainID, err := e.client.ChainID(ctx)
	if err != nil {
		return nil, classifyRPCError(err, "failed to fetch chain id")
	}

	signed, err := e.signer.SignTx(tx, chainID)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeInvalidSignature {
			return nil, err
		}
		return nil, apperrors.Wrap(err, apperrors.CodeWalletRejected, "wallet declined to sign")
	}
	return signed, nil
}

// Submit sends the signed transaction and returns its hash. Submission
// failures are transient by definition: the transaction is not on the ledger,
// so retrying with the same payload is safe.
func (e *Executor) Submit(ctx context.Context, signedTx *ethtypes.Transaction) (common.Hash, error) {
	if err := e.client.SendTransaction(ctx, signedTx); err != nil {
		if isInsufficientFunds(err) {
			return common.Hash{}, apperrors.Wrap(err, apperrors.CodeInsufficientBalance, "insufficient balance for transaction")
		}
		return common.Hash{}, apperrors.Wrap(err, apperrors.CodeNetworkError, "failed to submit transaction")
	}

	hash := signedTx.Hash()
	e.logger.Infof("Transaction submitted: %s", hash.Hex())
	return hash, nil
}

// PollStatus polls the ledger for the receipt until the deadline passes.
// An expired deadline is TIMEOUT_ERROR: the outcome is unknown and the caller
// should poll once more before classifying the attempt as failed.
func (e *Executor) PollStatus(ctx context.Context, hash common.Hash, deadline time.Time) (TxStatus, error) {
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		status, err := e.CheckStatus(ctx, hash)
		if err != nil {
			return TxStatusPending, err
		}
		if status != TxStatusPending {
			return status, nil
		}

		if time.Now().After(deadline) {
			return TxStatusPending, apperrors.Newf(apperrors.CodeTimeoutError, "transaction %s not confirmed before deadline", hash.Hex())
		}

		select {
		case <-ctx.Done():
			return TxStatusPending, apperrors.Wrap(ctx.Err(), apperrors.CodeTimeoutError, "confirmation polling cancelled")
		case <-ticker.C:
		}
	}
}

// CheckStatus performs a single receipt lookup. Used for the one extra poll
// after a timeout, when the transaction may have confirmed out-of-band.
func (e *Executor) CheckStatus(ctx context.Context, hash common.Hash) (TxStatus, error) {
	receipt, err := e.client.TransactionReceipt(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return TxStatusPending, nil
		}
		return TxStatusPending, classifyRPCError(err, "failed to fetch transaction receipt")
	}

	if receipt.Status == ethtypes.ReceiptStatusSuccessful {
		return TxStatusSuccess, nil
	}
	return TxStatusFailed, nil
}

// Receipt fetches the confirmed receipt for a transaction.
func (e *Executor) Receipt(ctx context.Context, hash common.Hash) (*ethtypes.Receipt, error) {
	receipt, err := e.client.TransactionReceipt(ctx, hash)
	if err != nil {
		return nil, classifyRPCError(err, "failed to fetch transaction receipt")
	}
	return receipt, nil
}

func classifyRPCError(err error, message string) error {
	if errors.Is(err, ethereum.NotFound) {
		return apperrors.Wrap(err, apperrors.CodeAccountNotFound, message)
	}
	return apperrors.Wrap(err, apperrors.CodeNetworkError, message)
}

func isInsufficientFunds(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "insufficient funds")
}
