package repositories

import (
	"context"

	"crowdfund.backend/internal/domain/entities"
)

// LedgerEventRepository defines ledger event data operations
type LedgerEventRepository interface {
	Create(ctx context.Context, event *entities.LedgerEvent) error
	ListByCampaign(ctx context.Context, campaignID uint64) ([]*entities.LedgerEvent, error)
}
