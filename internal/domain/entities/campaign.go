package entities

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/volatiletech/null/v8"
)

// CampaignState is the effective state of a campaign at a point in time
type CampaignState string

const (
	CampaignStateOpen      CampaignState = "OPEN"
	CampaignStateFunded    CampaignState = "FUNDED"
	CampaignStateFailed    CampaignState = "FAILED"
	CampaignStateFinalized CampaignState = "FINALIZED"
)

// NativeAsset marks a campaign paid in the chain's native currency.
var NativeAsset = common.Address{}

// Campaign represents one funding round
type Campaign struct {
	ID                uint64         `json:"id"`
	Creator           common.Address `json:"creator"`
	CreatorName       string         `json:"creatorName"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Goal              *big.Int       `json:"goal"`
	Deadline          time.Time      `json:"deadline"`
	PaymentAsset      common.Address `json:"paymentAsset"`
	FeeRecipient      common.Address `json:"feeRecipient"`
	FeeBasisPoints    uint32         `json:"feeBasisPoints"`
	MetadataReference string         `json:"metadataReference"`
	TotalRaised       *big.Int       `json:"totalRaised"`
	TotalRefunded     *big.Int       `json:"totalRefunded"`
	DonorCount        int            `json:"donorCount"`
	FundsWithdrawn    bool           `json:"fundsWithdrawn"`
	Finalized         bool           `json:"finalized"`
	ClaimedAt         null.Time      `json:"claimedAt"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// IsNative reports whether the campaign accepts the native currency
func (c *Campaign) IsNative() bool {
	return c.PaymentAsset == NativeAsset
}

// GoalReached reports whether totalRaised >= goal
func (c *Campaign) GoalReached() bool {
	return c.TotalRaised.Cmp(c.Goal) >= 0
}

// IsOpen reports whether contributions are still accepted at now
func (c *Campaign) IsOpen(now time.Time) bool {
	return now.Before(c.Deadline)
}

// State computes the effective state from the stored flags, totals and deadline.
// Stored flags may lag behind the deadline, so this is always recomputed.
func (c *Campaign) State(now time.Time) CampaignState {
	switch {
	case c.IsOpen(now):
		return CampaignStateOpen
	case c.Finalized:
		return CampaignStateFinalized
	case c.GoalReached():
		return CampaignStateFunded
	default:
		return CampaignStateFailed
	}
}

// Outstanding is the value the ledger still holds on behalf of this campaign.
func (c *Campaign) Outstanding() *big.Int {
	if c.FundsWithdrawn {
		return new(big.Int)
	}
	return new(big.Int).Sub(c.TotalRaised, c.TotalRefunded)
}

// CampaignView is a campaign together with its effective state
type CampaignView struct {
	*Campaign
	State CampaignState `json:"state"`
}

// CreateCampaignInput is the request payload to create a campaign
type CreateCampaignInput struct {
	Creator           string `json:"creator" binding:"required"`
	CreatorName       string `json:"creatorName"`
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description"`
	Goal              string `json:"goal" binding:"required"`
	Deadline          int64  `json:"deadline" binding:"required"`
	PaymentAsset      string `json:"paymentAsset"`
	FeeRecipient      string `json:"feeRecipient"`
	MetadataReference string `json:"metadataReference"`
}

// ContributeInput is the request payload to contribute
type ContributeInput struct {
	Amount string `json:"amount" binding:"required"`
}

// Settlement describes the outcome of a successful claim
type Settlement struct {
	CampaignID    uint64         `json:"campaignId"`
	Creator       common.Address `json:"creator"`
	FeeRecipient  common.Address `json:"feeRecipient"`
	TotalRaised   *big.Int       `json:"totalRaised"`
	Fee           *big.Int       `json:"fee"`
	CreatorAmount *big.Int       `json:"creatorAmount"`
}
