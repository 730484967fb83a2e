package entities

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/volatiletech/null/v8"
)

// Contribution is what one contributor has paid into one campaign
type Contribution struct {
	CampaignID       uint64         `json:"campaignId"`
	Contributor      common.Address `json:"contributor"`
	Amount           *big.Int       `json:"amount"`
	TotalContributed *big.Int       `json:"totalContributed"`
	RefundedAt       null.Time      `json:"refundedAt"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}
