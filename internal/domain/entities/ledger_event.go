package entities

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// LedgerEventType represents ledger event type
type LedgerEventType string

const (
	LedgerEventCampaignCreated      LedgerEventType = "CAMPAIGN_CREATED"
	LedgerEventContributionReceived LedgerEventType = "CONTRIBUTION_RECEIVED"
	LedgerEventFundsClaimed         LedgerEventType = "FUNDS_CLAIMED"
	LedgerEventRefundIssued         LedgerEventType = "REFUND_ISSUED"
	LedgerEventCampaignClosed       LedgerEventType = "CAMPAIGN_CLOSED"
	LedgerEventFundsSwept           LedgerEventType = "FUNDS_SWEPT"
)

// LedgerEvent is an append-only record an indexer can replay to rebuild state
type LedgerEvent struct {
	Seq        uint64          `json:"seq"`
	CampaignID uint64          `json:"campaignId"`
	Type       LedgerEventType `json:"type"`
	Actor      common.Address  `json:"actor"`
	Asset      common.Address  `json:"asset"`
	Amount     *big.Int        `json:"amount"`
	Fee        *big.Int        `json:"fee"`
	Outcome    CampaignState   `json:"outcome,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// AssetBalance is the amount of one asset held by one account
type AssetBalance struct {
	Holder common.Address `json:"holder"`
	Asset  common.Address `json:"asset"`
	Amount *big.Int       `json:"amount"`
}

// TransferInput is the request payload for approve / transfer / deposit
type TransferInput struct {
	To     string `json:"to" binding:"required"`
	Asset  string `json:"asset"`
	Amount string `json:"amount" binding:"required"`
}

// SweepInput is the request payload for the owner escape hatch
type SweepInput struct {
	Asset string `json:"asset"`
	To    string `json:"to" binding:"required"`
}
