package repositories

import (
	"context"
	"errors"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/infrastructure/models"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContributionRepository implements contribution data operations
type ContributionRepository struct {
	db *gorm.DB
}

// NewContributionRepository creates a new contribution repository
func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

// Get returns one contributor's record for a campaign
func (r *ContributionRepository) Get(ctx context.Context, campaignID uint64, contributor common.Address) (*entities.Contribution, error) {
	var m models.Contribution
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("campaign_id = ? AND contributor = ?", campaignID, encodeAddress(contributor)).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toContributionEntity(&m), nil
}

// Save inserts the record or updates amounts of an existing one
func (r *ContributionRepository) Save(ctx context.Context, c *entities.Contribution) error {
	m := &models.Contribution{
		CampaignID:       c.CampaignID,
		Contributor:      encodeAddress(c.Contributor),
		Amount:           encodeAmount(c.Amount),
		TotalContributed: encodeAmount(c.TotalContributed),
		RefundedAt:       fromNullTime(c.RefundedAt),
	}
	err := GetDB(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "campaign_id"}, {Name: "contributor"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "total_contributed", "refunded_at", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = m.CreatedAt
	}
	c.UpdatedAt = m.UpdatedAt
	return nil
}

// ListByCampaign returns contributions in first-contribution order
func (r *ContributionRepository) ListByCampaign(ctx context.Context, campaignID uint64) ([]*entities.Contribution, error) {
	var ms []models.Contribution
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("id ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Contribution, len(ms))
	for i := range ms {
		out[i] = toContributionEntity(&ms[i])
	}
	return out, nil
}

func toContributionEntity(m *models.Contribution) *entities.Contribution {
	return &entities.Contribution{
		CampaignID:       m.CampaignID,
		Contributor:      common.HexToAddress(m.Contributor),
		Amount:           decodeAmount(m.Amount),
		TotalContributed: decodeAmount(m.TotalContributed),
		RefundedAt:       toNullTime(m.RefundedAt),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
