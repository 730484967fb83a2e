package handlers

import (
	"context"
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/interfaces/http/middleware"
	"crowdfund.backend/internal/interfaces/http/response"
	"crowdfund.backend/pkg/utils"
)

type CampaignService interface {
	CreateCampaign(ctx context.Context, caller common.Address, input *entities.CreateCampaignInput) (*entities.CampaignView, error)
	ListCampaigns(ctx context.Context, params utils.PaginationParams) ([]*entities.CampaignView, utils.PaginationMeta, error)
	GetCampaign(ctx context.Context, id uint64) (*entities.CampaignView, error)
	GetDonors(ctx context.Context, id uint64) ([]common.Address, error)
	GetContribution(ctx context.Context, id uint64, contributor common.Address) (*big.Int, error)
	ListEvents(ctx context.Context, id uint64) ([]*entities.LedgerEvent, error)
	Contribute(ctx context.Context, caller common.Address, id uint64, amount *big.Int) (*entities.Contribution, error)
	ClaimFunds(ctx context.Context, caller common.Address, id uint64) (*entities.Settlement, error)
	Refund(ctx context.Context, caller common.Address, id uint64) (*big.Int, error)
}

// CampaignHandler handles campaign endpoints
type CampaignHandler struct {
	ledger CampaignService
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(ledger CampaignService) *CampaignHandler {
	return &CampaignHandler{ledger: ledger}
}

// CreateCampaign creates a new campaign
// POST /api/v1/campaigns
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var input entities.CreateCampaignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	caller, ok := middleware.GetAccount(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	campaign, err := h.ledger.CreateCampaign(c.Request.Context(), caller, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"campaign": campaign})
}

// ListCampaigns lists campaigns in creation order
// GET /api/v1/campaigns
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}

	campaigns, meta, err := h.ledger.ListCampaigns(c.Request.Context(), utils.PaginationParams{Page: page, Limit: limit})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "campaigns", campaigns, meta)
}

// GetCampaign gets a campaign by ID
// GET /api/v1/campaigns/:id
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	campaign, err := h.ledger.GetCampaign(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"campaign": campaign})
}

// GetDonors lists every account that contributed to a campaign
// GET /api/v1/campaigns/:id/donors
func (h *CampaignHandler) GetDonors(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	donors, err := h.ledger.GetDonors(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"donors": donors})
}

// GetContribution returns one contributor's outstanding amount
// GET /api/v1/campaigns/:id/contributions/:address
func (h *CampaignHandler) GetContribution(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	contributor, err := utils.ParseAddress(c.Param("address"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid contributor address"))
		return
	}

	amount, err := h.ledger.GetContribution(c.Request.Context(), id, contributor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"campaignId":  id,
		"contributor": contributor,
		"amount":      amount,
	})
}

// GetEvents gets the ledger events of a campaign
// GET /api/v1/campaigns/:id/events
func (h *CampaignHandler) GetEvents(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	events, err := h.ledger.ListEvents(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"events": events})
}

// Contribute pays into a campaign's escrow
// POST /api/v1/campaigns/:id/contributions
func (h *CampaignHandler) Contribute(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}

	var input entities.ContributeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	amount, err := utils.ParseAmount(input.Amount)
	if err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	caller, ok := middleware.GetAccount(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	contribution, err := h.ledger.Contribute(c.Request.Context(), caller, id, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"contribution": contribution})
}

// ClaimFunds pays a funded campaign out to its creator
// POST /api/v1/campaigns/:id/claim
func (h *CampaignHandler) ClaimFunds(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	caller, ok := middleware.GetAccount(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	settlement, err := h.ledger.ClaimFunds(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"settlement": settlement})
}

// Refund returns the caller's contribution to a failed campaign
// POST /api/v1/campaigns/:id/refund
func (h *CampaignHandler) Refund(c *gin.Context) {
	id, ok := campaignID(c)
	if !ok {
		return
	}
	caller, ok := middleware.GetAccount(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Account not authenticated"))
		return
	}

	refunded, err := h.ledger.Refund(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"campaignId":  id,
		"contributor": caller,
		"refunded":    refunded,
	})
}

func campaignID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid campaign ID"))
		return 0, false
	}
	return id, true
}
