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

type DepositService interface {
	Deposit(ctx context.Context, caller, holder, asset common.Address, amount *big.Int) error
}

type SweepService interface {
	Sweep(ctx context.Context, caller common.Address, asset, to common.Address) (*big.Int, error)
}

// AdminHandler handles owner-only endpoints
type AdminHandler struct {
	deposits DepositService
	sweeper  SweepService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(deposits DepositService, sweeper SweepService) *AdminHandler {
	return &AdminHandler{deposits: deposits, sweeper: sweeper}
}

// Deposit credits an account with fresh balance
// POST /api/v1/admin/deposit
func (h *AdminHandler) Deposit(c *gin.Context) {
	req, ok := bindTransfer(c)
	if !ok {
		return
	}
	caller, ok := middleware.GetAccount(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	if err := h.deposits.Deposit(c.Request.Context(), caller, req.to, req.asset, req.amount); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"holder": req.to,
		"asset":  req.asset,
		"amount": req.amount,
	})
}

// Sweep moves funds the ledger holds outside any campaign
// POST /api/v1/admin/sweep
func (h *AdminHandler) Sweep(c *gin.Context) {
	var input entities.SweepInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	asset, err := utils.ParseAsset(input.Asset)
	if err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	to, err := utils.ParseAddress(input.To)
	if err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	caller, ok := middleware.GetAccount(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	swept, err := h.sweeper.Sweep(c.Request.Context(), caller, asset, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"asset": asset,
		"to":    to,
		"swept": swept,
	})
}
