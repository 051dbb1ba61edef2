package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
)

type MockEthClient struct {
	mock.Mock
}

func (m *MockEthClient) ChainID(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockEthClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockEthClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockEthClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockEthClient) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	args := m.Called(ctx, msg, blockNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEthClient) SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEthClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ethtypes.Receipt), args.Error(1)
}

func (m *MockEthClient) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	args := m.Called(ctx, account, blockNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

const testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func newTestExecutor(t *testing.T, client EthClient) *Executor {
	t.Helper()
	signer, err := NewPrivateKeySigner(testPrivateKey)
	require.NoError(t, err)
	return NewExecutor(client, signer, logging.NewNoOpLogger(),
		WithPollInterval(5*time.Millisecond),
		WithConfirmTimeout(100*time.Millisecond))
}

func newSignedTx(t *testing.T) *ethtypes.Transaction {
	t.Helper()
	signer, err := NewPrivateKeySigner(testPrivateKey)
	require.NoError(t, err)
	tx := ethtypes.NewTransaction(0, common.HexToAddress("0x1"), big.NewInt(0), 21000, big.NewInt(1), nil)
	signed, err := signer.SignTx(tx, big.NewInt(1))
	require.NoError(t, err)
	return signed
}

func TestSimulateFailureIsTerminal(t *testing.T) {
	client := new(MockEthClient)
	client.On("EstimateGas", mock.Anything, mock.Anything).
		Return(uint64(0), errors.New("execution reverted: symbol already registered"))

	executor := newTestExecutor(t, client)
	_, err := executor.Simulate(context.Background(), ethereum.CallMsg{})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSimulationFailed, apperrors.CodeOf(err))
	assert.False(t, apperrors.IsRetryable(err))
}

func TestSimulateReturnsGasEstimate(t *testing.T) {
	client := new(MockEthClient)
	client.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(150000), nil)

	executor := newTestExecutor(t, client)
	gas, err := executor.Simulate(context.Background(), ethereum.CallMsg{})

	require.NoError(t, err)
	assert.Equal(t, uint64(150000), gas)
}

func TestBuildTxFetchesNonceAndGasPrice(t *testing.T) {
	client := new(MockEthClient)
	executor := newTestExecutor(t, client)
	client.On("PendingNonceAt", mock.Anything, executor.Signer().Address()).Return(uint64(7), nil)
	client.On("SuggestGasPrice", mock.Anything).Return(big.NewInt(2000000000), nil)

	tx, err := executor.BuildTx(context.Background(), common.HexToAddress("0x2"), big.NewInt(0), 150000, []byte{0x01})

	require.NoError(t, err)
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, big.NewInt(2000000000), tx.GasPrice())
	assert.Equal(t, uint64(150000), tx.Gas())
}

func TestBuildTxNonceFailureIsNetworkError(t *testing.T) {
	client := new(MockEthClient)
	executor := newTestExecutor(t, client)
	client.On("PendingNonceAt", mock.Anything, mock.Anything).
		Return(uint64(0), errors.New("connection refused"))

	_, err := executor.BuildTx(context.Background(), common.HexToAddress("0x2"), big.NewInt(0), 21000, nil)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNetworkError, apperrors.CodeOf(err))
	assert.True(t, apperrors.IsRetryable(err))
}

func TestSubmitClassifiesInsufficientFunds(t *testing.T) {
	client := new(MockEthClient)
	client.On("SendTransaction", mock.Anything, mock.Anything).
		Return(errors.New("insufficient funds for gas * price + value"))

	executor := newTestExecutor(t, client)
	_, err := executor.Submit(context.Background(), newSignedTx(t))

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInsufficientBalance, apperrors.CodeOf(err))
	assert.False(t, apperrors.IsRetryable(err))
}

func TestSubmitClassifiesNetworkError(t *testing.T) {
	client := new(MockEthClient)
	client.On("SendTransaction", mock.Anything, mock.Anything).
		Return(errors.New("i/o timeout"))

	executor := newTestExecutor(t, client)
	_, err := executor.Submit(context.Background(), newSignedTx(t))

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNetworkError, apperrors.CodeOf(err))
	assert.True(t, apperrors.IsRetryable(err))
}

func TestSubmitReturnsHash(t *testing.T) {
	client := new(MockEthClient)
	client.On("SendTransaction", mock.Anything, mock.Anything).Return(nil)

	executor := newTestExecutor(t, client)
	signed := newSignedTx(t)
	hash, err := executor.Submit(context.Background(), signed)

	require.NoError(t, err)
	assert.Equal(t, signed.Hash(), hash)
}

func TestPollStatusSuccess(t *testing.T) {
	client := new(MockEthClient)
	hash := common.HexToHash("0xabc")
	client.On("TransactionReceipt", mock.Anything, hash).
		Return(nil, ethereum.NotFound).Twice()
	client.On("TransactionReceipt", mock.Anything, hash).
		Return(&ethtypes.Receipt{Status: ethtypes.ReceiptStatusSuccessful}, nil).Once()

	executor := newTestExecutor(t, client)
	status, err := executor.PollStatus(context.Background(), hash, time.Now().Add(time.Second))

	require.NoError(t, err)
	assert.Equal(t, TxStatusSuccess, status)
	client.AssertNumberOfCalls(t, "TransactionReceipt", 3)
}

func TestPollStatusReverted(t *testing.T) {
	client := new(MockEthClient)
	hash := common.HexToHash("0xdef")
	client.On("TransactionReceipt", mock.Anything, hash).
		Return(&ethtypes.Receipt{Status: ethtypes.ReceiptStatusFailed}, nil)

	executor := newTestExecutor(t, client)
	status, err := executor.PollStatus(context.Background(), hash, time.Now().Add(time.Second))

	require.NoError(t, err)
	assert.Equal(t, TxStatusFailed, status)
}

func TestPollStatusDeadlineYieldsTimeout(t *testing.T) {
	client := new(MockEthClient)
	hash := common.HexToHash("0x123")
	client.On("TransactionReceipt", mock.Anything, hash).Return(nil, ethereum.NotFound)

	executor := newTestExecutor(t, client)
	_, err := executor.PollStatus(context.Background(), hash, time.Now().Add(20*time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeTimeoutError, apperrors.CodeOf(err))
	assert.True(t, apperrors.IsUnknownOutcome(err))
}

func TestCheckStatusAfterTimeoutFindsReceipt(t *testing.T) {
	// The transaction confirmed while the poller was waiting out its last
	// tick. A single extra CheckStatus by hash must find it.
	client := new(MockEthClient)
	hash := common.HexToHash("0x456")
	client.On("TransactionReceipt", mock.Anything, hash).
		Return(&ethtypes.Receipt{Status: ethtypes.ReceiptStatusSuccessful}, nil)

	executor := newTestExecutor(t, client)
	status, err := executor.CheckStatus(context.Background(), hash)

	require.NoError(t, err)
	assert.Equal(t, TxStatusSuccess, status)
}

func TestCheckStatusPendingWhenNotFound(t *testing.T) {
	client := new(MockEthClient)
	hash := common.HexToHash("0x789")
	client.On("TransactionReceipt", mock.Anything, hash).Return(nil, ethereum.NotFound)

	executor := newTestExecutor(t, client)
	status, err := executor.CheckStatus(context.Background(), hash)

	require.NoError(t, err)
	assert.Equal(t, TxStatusPending, status)
}
