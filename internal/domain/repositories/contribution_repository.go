package repositories

import (
	"context"

	"crowdfund.backend/internal/domain/entities"
	"github.com/ethereum/go-ethereum/common"
)

// ContributionRepository defines contribution data operations
type ContributionRepository interface {
	Get(ctx context.Context, campaignID uint64, contributor common.Address) (*entities.Contribution, error)
	Save(ctx context.Context, contribution *entities.Contribution) error
	// ListByCampaign returns contributions in first-contribution order.
	ListByCampaign(ctx context.Context, campaignID uint64) ([]*entities.Contribution, error)
}
