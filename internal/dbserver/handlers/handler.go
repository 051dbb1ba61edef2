package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tokenforge/tokenforge-backend/internal/dbserver/repository"
	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	"github.com/tokenforge/tokenforge-backend/pkg/chain"
	"github.com/tokenforge/tokenforge-backend/pkg/database"
	"github.com/tokenforge/tokenforge-backend/pkg/fees"
	httpclient "github.com/tokenforge/tokenforge-backend/pkg/http"
	"github.com/tokenforge/tokenforge-backend/pkg/ipfs"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
)

// Handler bundles the API dependencies. The payment endpoints are plain
// persistence plus the lifecycle rules; the token endpoints drive real
// deployments through the chain executor.
type Handler struct {
	logger    logging.Logger
	db        *database.Connection
	payments  repository.PaymentRepository
	history   repository.HistoryRepository
	tokens    repository.TokenRepository
	publisher ipfs.Publisher
	executor  *chain.Executor
	network   chain.NetworkConfig
	schedule  fees.Schedule
	http      httpclient.HTTPClientInterface
	gateway   string
	now       func() time.Time
}

type Dependencies struct {
	Logger    logging.Logger
	DB        *database.Connection
	Payments  repository.PaymentRepository
	History   repository.HistoryRepository
	Tokens    repository.TokenRepository
	Publisher ipfs.Publisher
	Executor  *chain.Executor
	Network   chain.NetworkConfig
	Schedule  fees.Schedule
	HTTP      httpclient.HTTPClientInterface
	Gateway   string
}

func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		logger:    deps.Logger,
		db:        deps.DB,
		payments:  deps.Payments,
		history:   deps.History,
		tokens:    deps.Tokens,
		publisher: deps.Publisher,
		executor:  deps.Executor,
		network:   deps.Network,
		schedule:  deps.Schedule,
		http:      deps.HTTP,
		gateway:   deps.Gateway,
		now:       time.Now,
	}
}

// respondError maps the error taxonomy onto HTTP statuses and emits the
// code/message/details envelope clients localize from.
func (h *Handler) respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		if errors.Is(err, repository.ErrPaymentNotFound) || errors.Is(err, repository.ErrTokenNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": err.Error()}})
			return
		}
		h.logger.Errorf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "INTERNAL", "message": "internal server error"}})
		return
	}

	c.JSON(statusForCode(appErr.Code), gin.H{"error": appErr})
}

func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.CodeAccountNotFound:
		return http.StatusNotFound
	case apperrors.CodeInsufficientBalance:
		return http.StatusPaymentRequired
	case apperrors.CodeWalletRejected, apperrors.CodeWalletNotConnected:
		return http.StatusConflict
	case apperrors.CodeTimeoutError:
		return http.StatusGatewayTimeout
	case apperrors.CodeNetworkError, apperrors.CodeIPFSUploadFailed:
		return http.StatusBadGateway
	case apperrors.CodeSimulationFailed, apperrors.CodeTransactionFailed,
		apperrors.CodeContractError, apperrors.CodeInvalidSignature:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
