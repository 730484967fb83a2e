package repositories

import (
	"context"
	"errors"
	"time"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/infrastructure/models"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// CampaignRepository implements campaign data operations
type CampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create persists a new campaign and assigns its ID
func (r *CampaignRepository) Create(ctx context.Context, campaign *entities.Campaign) error {
	m := r.toModel(campaign)
	m.ID = 0
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	campaign.ID = m.ID
	campaign.CreatedAt = m.CreatedAt
	campaign.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a campaign by ID
func (r *CampaignRepository) GetByID(ctx context.Context, id uint64) (*entities.Campaign, error) {
	var m models.Campaign
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List returns campaigns in creation order with pagination
func (r *CampaignRepository) List(ctx context.Context, limit, offset int) ([]*entities.Campaign, int, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.Campaign{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Campaign
	q := db.Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	campaigns := make([]*entities.Campaign, len(ms))
	for i := range ms {
		campaigns[i] = r.toEntity(&ms[i])
	}
	return campaigns, int(total), nil
}

// Update writes the mutable bookkeeping columns. Immutable fields are never touched.
func (r *CampaignRepository) Update(ctx context.Context, campaign *entities.Campaign) error {
	res := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Campaign{}).
		Where("id = ?", campaign.ID).
		Updates(map[string]interface{}{
			"total_raised":    encodeAmount(campaign.TotalRaised),
			"total_refunded":  encodeAmount(campaign.TotalRefunded),
			"donor_count":     campaign.DonorCount,
			"funds_withdrawn": campaign.FundsWithdrawn,
			"finalized":       campaign.Finalized,
			"claimed_at":      fromNullTime(campaign.ClaimedAt),
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListUnsettledByAsset returns campaigns in asset that still hold funds on the ledger
func (r *CampaignRepository) ListUnsettledByAsset(ctx context.Context, asset common.Address) ([]*entities.Campaign, error) {
	var ms []models.Campaign
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("payment_asset = ? AND funds_withdrawn = ?", encodeAddress(asset), false).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	campaigns := make([]*entities.Campaign, len(ms))
	for i := range ms {
		campaigns[i] = r.toEntity(&ms[i])
	}
	return campaigns, nil
}

// ListClosedUnannounced returns campaigns whose deadline is at or before now and have no close event
func (r *CampaignRepository) ListClosedUnannounced(ctx context.Context, now time.Time, limit int) ([]*entities.Campaign, error) {
	var ms []models.Campaign
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("deadline <= ? AND close_announced = ?", now.UTC(), false).
		Order("deadline ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	campaigns := make([]*entities.Campaign, len(ms))
	for i := range ms {
		campaigns[i] = r.toEntity(&ms[i])
	}
	return campaigns, nil
}

// MarkCloseAnnounced flags a campaign once its close event has been written
func (r *CampaignRepository) MarkCloseAnnounced(ctx context.Context, id uint64) error {
	res := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Campaign{}).
		Where("id = ?", id).
		Update("close_announced", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *CampaignRepository) toModel(c *entities.Campaign) *models.Campaign {
	return &models.Campaign{
		ID:                c.ID,
		Creator:           encodeAddress(c.Creator),
		CreatorName:       c.CreatorName,
		Title:             c.Title,
		Description:       c.Description,
		Goal:              encodeAmount(c.Goal),
		Deadline:          c.Deadline.UTC(),
		PaymentAsset:      encodeAddress(c.PaymentAsset),
		FeeRecipient:      encodeAddress(c.FeeRecipient),
		FeeBasisPoints:    c.FeeBasisPoints,
		MetadataReference: c.MetadataReference,
		TotalRaised:       encodeAmount(c.TotalRaised),
		TotalRefunded:     encodeAmount(c.TotalRefunded),
		DonorCount:        c.DonorCount,
		FundsWithdrawn:    c.FundsWithdrawn,
		Finalized:         c.Finalized,
		ClaimedAt:         fromNullTime(c.ClaimedAt),
	}
}

func (r *CampaignRepository) toEntity(m *models.Campaign) *entities.Campaign {
	return &entities.Campaign{
		ID:                m.ID,
		Creator:           common.HexToAddress(m.Creator),
		CreatorName:       m.CreatorName,
		Title:             m.Title,
		Description:       m.Description,
		Goal:              decodeAmount(m.Goal),
		Deadline:          m.Deadline.UTC(),
		PaymentAsset:      common.HexToAddress(m.PaymentAsset),
		FeeRecipient:      common.HexToAddress(m.FeeRecipient),
		FeeBasisPoints:    m.FeeBasisPoints,
		MetadataReference: m.MetadataReference,
		TotalRaised:       decodeAmount(m.TotalRaised),
		TotalRefunded:     decodeAmount(m.TotalRefunded),
		DonorCount:        m.DonorCount,
		FundsWithdrawn:    m.FundsWithdrawn,
		Finalized:         m.Finalized,
		ClaimedAt:         toNullTime(m.ClaimedAt),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
