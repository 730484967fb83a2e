package main

import (
	"github.com/gin-gonic/gin"

	"crowdfund.backend/internal/interfaces/http/handlers"
	"crowdfund.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	campaignHandler  *handlers.CampaignHandler
	assetHandler     *handlers.AssetHandler
	adminHandler     *handlers.AdminHandler
	authMiddleware   gin.HandlerFunc
	ownerMiddleware  gin.HandlerFunc
	idempotencyStore middleware.IdempotencyStore
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	idempotent := middleware.IdempotencyMiddleware(d.idempotencyStore)

	v1 := r.Group("/api/v1")
	{
		// Campaign reads (public)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.GET("", d.campaignHandler.ListCampaigns)
			campaigns.GET("/:id", d.campaignHandler.GetCampaign)
			campaigns.GET("/:id/donors", d.campaignHandler.GetDonors)
			campaigns.GET("/:id/contributions/:address", d.campaignHandler.GetContribution)
			campaigns.GET("/:id/events", d.campaignHandler.GetEvents)
		}

		// Campaign operations (protected)
		campaignOps := v1.Group("/campaigns")
		campaignOps.Use(d.authMiddleware)
		{
			campaignOps.POST("", idempotent, d.campaignHandler.CreateCampaign)
			campaignOps.POST("/:id/contributions", idempotent, d.campaignHandler.Contribute)
			campaignOps.POST("/:id/claim", d.campaignHandler.ClaimFunds)
			campaignOps.POST("/:id/refund", d.campaignHandler.Refund)
		}

		// Balance book
		assets := v1.Group("/assets")
		{
			assets.GET("/:asset/balances/:address", d.assetHandler.GetBalance)
			assets.GET("/:asset/allowances/:owner/:spender", d.assetHandler.GetAllowance)
			assets.POST("/approve", d.authMiddleware, d.assetHandler.Approve)
			assets.POST("/transfer", d.authMiddleware, idempotent, d.assetHandler.Transfer)
		}

		// Admin routes (ledger owner only)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, d.ownerMiddleware)
		{
			admin.POST("/deposit", idempotent, d.adminHandler.Deposit)
			admin.POST("/sweep", d.adminHandler.Sweep)
		}
	}
}
