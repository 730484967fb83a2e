package repositories

import (
	"context"
	"time"

	"crowdfund.backend/internal/domain/entities"
	"github.com/ethereum/go-ethereum/common"
)

// CampaignRepository defines campaign data operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *entities.Campaign) error
	GetByID(ctx context.Context, id uint64) (*entities.Campaign, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Campaign, int, error)
	Update(ctx context.Context, campaign *entities.Campaign) error
	// ListUnsettledByAsset returns campaigns in asset whose funds have not been withdrawn.
	ListUnsettledByAsset(ctx context.Context, asset common.Address) ([]*entities.Campaign, error)
	// ListClosedUnannounced returns campaigns past their deadline with no close event yet.
	ListClosedUnannounced(ctx context.Context, now time.Time, limit int) ([]*entities.Campaign, error)
	MarkCloseAnnounced(ctx context.Context, id uint64) error
}
