package handlers

import (
	"context"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/interfaces/http/middleware"
	"crowdfund.backend/internal/interfaces/http/response"
	"crowdfund.backend/pkg/utils"
)

type AssetService interface {
	Approve(ctx context.Context, caller, spender, asset common.Address, amount *big.Int) error
	Transfer(ctx context.Context, caller, to, asset common.Address, amount *big.Int) error
	BalanceOf(ctx context.Context, holder, asset common.Address) (*big.Int, error)
	Allowance(ctx context.Context, owner, spender, asset common.Address) (*big.Int, error)
}

// AssetHandler handles balance book endpoints
type AssetHandler struct {
	assets AssetService
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assets AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

type transferRequest struct {
	to     common.Address
	asset  common.Address
	amount *big.Int
}

// bindTransfer parses a TransferInput body, writing the error response on failure
func bindTransfer(c *gin.Context) (*transferRequest, bool) {
	var input entities.TransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return nil, false
	}
	to, err := utils.ParseAddress(input.To)
	if err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return nil, false
	}
	asset, err := utils.ParseAsset(input.Asset)
	if err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return nil, false
	}
	amount, err := utils.ParseAmount(input.Amount)
	if err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return nil, false
	}
	return &transferRequest{to: to, asset: asset, amount: amount}, true
}

// Approve sets an allowance over the caller's token balance
// POST /api/v1/assets/approve
func (h *AssetHandler) Approve(c *gin.Context) {
	req, ok := bindTransfer(c)
	if !ok {
		return
	}
	caller, ok := middleware.GetAccount(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	if err := h.assets.Approve(c.Request.Context(), caller, req.to, req.asset, req.amount); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"owner":     caller,
		"spender":   req.to,
		"asset":     req.asset,
		"allowance": req.amount,
	})
}

// Transfer moves the caller's funds to another account
// POST /api/v1/assets/transfer
func (h *AssetHandler) Transfer(c *gin.Context) {
	req, ok := bindTransfer(c)
	if !ok {
		return
	}
	caller, ok := middleware.GetAccount(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	if err := h.assets.Transfer(c.Request.Context(), caller, req.to, req.asset, req.amount); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"from":   caller,
		"to":     req.to,
		"asset":  req.asset,
		"amount": req.amount,
	})
}

// GetBalance returns an account's balance of one asset
// GET /api/v1/assets/:asset/balances/:address
func (h *AssetHandler) GetBalance(c *gin.Context) {
	asset, err := utils.ParseAsset(c.Param("asset"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid asset"))
		return
	}
	holder, err := utils.ParseAddress(c.Param("address"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid holder address"))
		return
	}

	balance, err := h.assets.BalanceOf(c.Request.Context(), holder, asset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"holder":  holder,
		"asset":   asset,
		"balance": balance,
	})
}

// GetAllowance returns how much spender may still pull from owner
// GET /api/v1/assets/:asset/allowances/:owner/:spender
func (h *AssetHandler) GetAllowance(c *gin.Context) {
	asset, err := utils.ParseAsset(c.Param("asset"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid asset"))
		return
	}
	owner, err := utils.ParseAddress(c.Param("owner"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid owner address"))
		return
	}
	spender, err := utils.ParseAddress(c.Param("spender"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid spender address"))
		return
	}

	allowance, err := h.assets.Allowance(c.Request.Context(), owner, spender, asset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"owner":     owner,
		"spender":   spender,
		"asset":     asset,
		"allowance": allowance,
	})
}
