package handlers

import (
	"context"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	"github.com/tokenforge/tokenforge-backend/pkg/chain"
	"github.com/tokenforge/tokenforge-backend/pkg/fees"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
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

type burnEnv struct {
	router *gin.Engine
	client *MockEthClient
	tokens *MockTokenRepository
}

// setupBurnEnv builds a handler over a mocked ledger client with a zero
// confirmation budget, so the first poll already runs out of time.
func setupBurnEnv(t *testing.T) *burnEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	signer, err := chain.NewPrivateKeySigner(testPrivateKeyHex)
	require.NoError(t, err)
	logger := logging.NewNoOpLogger()
	schedule, err := fees.NewSchedule("0.1", "0.05")
	require.NoError(t, err)

	env := &burnEnv{
		client: new(MockEthClient),
		tokens: new(MockTokenRepository),
	}

	executor := chain.NewExecutor(env.client, signer, logger,
		chain.WithPollInterval(time.Millisecond),
		chain.WithConfirmTimeout(0))

	handler := NewHandler(Dependencies{
		Logger:   logger,
		Payments: new(MockPaymentRepository),
		History:  new(MockHistoryRepository),
		Tokens:   env.tokens,
		Executor: executor,
		Network:  chain.NetworkConfig{Name: "testnet", ChainID: 31337, FactoryAddress: "0x5FbDB2315678afecb367f032d93F642f64180aa3"},
		Schedule: schedule,
	})

	router := gin.New()
	router.POST("/api/tokens/:address/burn", handler.BurnToken)
	env.router = router
	return env
}

func (e *burnEnv) stubSubmission(t *testing.T) {
	t.Helper()
	e.tokens.On("GetTokenByAddress", testTokenAddress).
		Return(types.TokenInfo{Address: testTokenAddress, Decimals: 7}, nil).Once()
	e.client.On("EstimateGas", mock.Anything, mock.Anything).Return(uint64(100000), nil).Once()
	e.client.On("PendingNonceAt", mock.Anything, mock.Anything).Return(uint64(0), nil).Once()
	e.client.On("SuggestGasPrice", mock.Anything).Return(big.NewInt(1), nil).Once()
	e.client.On("ChainID", mock.Anything).Return(big.NewInt(31337), nil).Once()
	e.client.On("SendTransaction", mock.Anything, mock.Anything).Return(nil).Once()
}

func TestBurnTokenResolvesAfterConfirmationTimeout(t *testing.T) {
	env := setupBurnEnv(t)
	env.stubSubmission(t)

	// The poller's lookup finds nothing before the deadline, but the burn
	// confirms out-of-band and the extra lookup by hash picks it up.
	env.client.On("TransactionReceipt", mock.Anything, mock.Anything).
		Return(nil, ethereum.NotFound).Once()
	env.client.On("TransactionReceipt", mock.Anything, mock.Anything).
		Return(&ethtypes.Receipt{Status: ethtypes.ReceiptStatusSuccessful}, nil).Once()

	w := (&testEnv{router: env.router}).do(t, http.MethodPost,
		"/api/tokens/"+testTokenAddress+"/burn",
		burnRequest{From: testCreator, Amount: "10"})

	require.Equal(t, http.StatusOK, w.Code)
	env.client.AssertExpectations(t)
	env.tokens.AssertExpectations(t)
}

func TestBurnTokenRevertFoundByExtraLookup(t *testing.T) {
	env := setupBurnEnv(t)
	env.stubSubmission(t)

	env.client.On("TransactionReceipt", mock.Anything, mock.Anything).
		Return(nil, ethereum.NotFound).Once()
	env.client.On("TransactionReceipt", mock.Anything, mock.Anything).
		Return(&ethtypes.Receipt{Status: ethtypes.ReceiptStatusFailed}, nil).Once()

	w := (&testEnv{router: env.router}).do(t, http.MethodPost,
		"/api/tokens/"+testTokenAddress+"/burn",
		burnRequest{From: testCreator, Amount: "10"})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, string(apperrors.CodeTransactionFailed), errorCode(t, w))
}

func TestBurnTokenStillPendingAfterExtraLookup(t *testing.T) {
	env := setupBurnEnv(t)
	env.stubSubmission(t)

	env.client.On("TransactionReceipt", mock.Anything, mock.Anything).
		Return(nil, ethereum.NotFound).Twice()

	w := (&testEnv{router: env.router}).do(t, http.MethodPost,
		"/api/tokens/"+testTokenAddress+"/burn",
		burnRequest{From: testCreator, Amount: "10"})

	require.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, string(apperrors.CodeTimeoutError), errorCode(t, w))
}
