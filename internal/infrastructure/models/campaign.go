package models

import (
	"time"
)

type Campaign struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement"`
	Creator           string    `gorm:"type:varchar(42);not null;index"`
	CreatorName       string    `gorm:"type:varchar(255)"`
	Title             string    `gorm:"type:varchar(255);not null"`
	Description       string    `gorm:"type:text"`
	Goal              string    `gorm:"type:varchar(100);not null"` // BigInt
	Deadline          time.Time `gorm:"not null;index"`
	PaymentAsset      string    `gorm:"type:varchar(42);not null;index"`
	FeeRecipient      string    `gorm:"type:varchar(42);not null"`
	FeeBasisPoints    uint32    `gorm:"not null"`
	MetadataReference string    `gorm:"type:text"`
	TotalRaised       string    `gorm:"type:varchar(100);not null;default:'0'"` // BigInt
	TotalRefunded     string    `gorm:"type:varchar(100);not null;default:'0'"` // BigInt
	DonorCount        int       `gorm:"not null;default:0"`
	FundsWithdrawn    bool      `gorm:"not null;default:false"`
	Finalized         bool      `gorm:"not null;default:false"`
	CloseAnnounced    bool      `gorm:"not null;default:false;index"`
	ClaimedAt         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Contribution struct {
	ID               uint64 `gorm:"primaryKey;autoIncrement"`
	CampaignID       uint64 `gorm:"not null;uniqueIndex:idx_contribution_campaign_contributor"`
	Contributor      string `gorm:"type:varchar(42);not null;uniqueIndex:idx_contribution_campaign_contributor"`
	Amount           string `gorm:"type:varchar(100);not null"` // BigInt
	TotalContributed string `gorm:"type:varchar(100);not null"` // BigInt
	RefundedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type LedgerEvent struct {
	Seq        uint64 `gorm:"primaryKey;autoIncrement"`
	CampaignID uint64 `gorm:"not null;index"`
	EventType  string `gorm:"type:varchar(50);not null;index"`
	Actor      string `gorm:"type:varchar(42);not null"`
	Asset      string `gorm:"type:varchar(42);not null"`
	Amount     string `gorm:"type:varchar(100);not null;default:'0'"`
	Fee        string `gorm:"type:varchar(100);not null;default:'0'"`
	Outcome    string `gorm:"type:varchar(20)"`
	CreatedAt  time.Time
}

func (LedgerEvent) TableName() string {
	return "ledger_events"
}
