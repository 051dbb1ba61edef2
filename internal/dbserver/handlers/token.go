package handlers

import (
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/tokenforge/tokenforge-backend/internal/deployer"
	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	"github.com/tokenforge/tokenforge-backend/pkg/chain"
	"github.com/tokenforge/tokenforge-backend/pkg/ipfs"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
	"github.com/tokenforge/tokenforge-backend/pkg/validator"
)

// DeployToken runs a full deployment through the state machine and registers
// the token on success.
func (h *Handler) DeployToken(c *gin.Context) {
	var request types.TokenDeployRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, apperrors.Wrap(err, apperrors.CodeInvalidInput, "invalid request body"))
		return
	}

	deployment, err := deployer.NewDeployment(request, h.schedule,
		common.HexToAddress(h.network.FactoryAddress), h.publisher, h.executor, h.logger)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := deployment.Run(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	token := types.TokenInfo{
		Address:         result.TokenAddress,
		Name:            request.Name,
		Symbol:          request.Symbol,
		Decimals:        request.Decimals,
		TotalSupply:     request.InitialSupply,
		Creator:         request.AdminAddress,
		MetadataURI:     deployment.MetadataURI(),
		DeployedAt:      result.Timestamp,
		TransactionHash: result.TransactionHash,
	}
	if err := h.tokens.CreateToken(&token); err != nil {
		// The deployment is on-chain; registry lag is not a caller error
		h.logger.Errorf("Failed to register deployed token %s: %v", token.Address, err)
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListTokens(c *gin.Context) {
	tokens, err := h.tokens.GetAllTokens()
	if err != nil {
		h.respondError(c, err)
		return
	}
	if tokens == nil {
		tokens = []types.TokenInfo{}
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) GetToken(c *gin.Context) {
	token, err := h.tokens.GetTokenByAddress(c.Param("address"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// GetTokenMetadata resolves a registered token's metadata document through
// the configured IPFS gateway.
func (h *Handler) GetTokenMetadata(c *gin.Context) {
	token, err := h.tokens.GetTokenByAddress(c.Param("address"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if token.MetadataURI == "" {
		h.respondError(c, apperrors.Newf(apperrors.CodeAccountNotFound, "token %s has no metadata", token.Address))
		return
	}

	metadata, err := ipfs.FetchMetadata(c.Request.Context(), h.http, h.gateway, token.MetadataURI)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metadata)
}

type burnRequest struct {
	From   string `json:"from"`
	Amount string `json:"amount"`
}

// BurnToken submits a factory burn for a registered token and waits for
// confirmation.
func (h *Handler) BurnToken(c *gin.Context) {
	address := c.Param("address")
	token, err := h.tokens.GetTokenByAddress(address)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var request burnRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, apperrors.Wrap(err, apperrors.CodeInvalidInput, "invalid request body"))
		return
	}
	if !validator.IsValidAddress(request.From) {
		h.respondError(c, apperrors.New(apperrors.CodeInvalidInput, "invalid from address"))
		return
	}
	if !validator.IsValidAmount(request.Amount) {
		h.respondError(c, apperrors.New(apperrors.CodeInvalidInput, "amount must be a positive decimal"))
		return
	}

	amount, err := chain.ToBaseUnits(request.Amount, token.Decimals)
	if err != nil {
		h.respondError(c, err)
		return
	}

	data, err := chain.PackBurn(common.HexToAddress(token.Address), common.HexToAddress(request.From), amount)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	factory := common.HexToAddress(h.network.FactoryAddress)
	gasLimit, err := h.executor.Simulate(ctx, ethereum.CallMsg{
		From: h.executor.Signer().Address(),
		To:   &factory,
		Data: data,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	tx, err := h.executor.BuildTx(ctx, factory, nil, gasLimit, data)
	if err != nil {
		h.respondError(c, err)
		return
	}
	signed, err := h.executor.Sign(ctx, tx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	hash, err := h.executor.Submit(ctx, signed)
	if err != nil {
		h.respondError(c, err)
		return
	}

	deadline := time.Now().Add(h.executor.ConfirmTimeout())
	status, err := h.executor.PollStatus(ctx, hash, deadline)
	if err != nil {
		resolved := false
		if apperrors.IsUnknownOutcome(err) {
			// The burn may have confirmed while the poller timed out.
			// One extra look by hash before giving up.
			if checked, checkErr := h.executor.CheckStatus(ctx, hash); checkErr == nil && checked != chain.TxStatusPending {
				status = checked
				resolved = true
			}
		}
		if !resolved {
			h.respondError(c, err)
			return
		}
	}
	if status == chain.TxStatusFailed {
		h.respondError(c, apperrors.Newf(apperrors.CodeTransactionFailed, "burn transaction %s reverted", hash.Hex()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactionHash": hash.Hex(),
		"token":           token.Address,
		"amount":          request.Amount,
	})
}
