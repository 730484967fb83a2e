package repositories

import (
	"context"

	"crowdfund.backend/internal/domain/entities"
	"crowdfund.backend/internal/infrastructure/models"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// LedgerEventRepository implements ledger event data operations
type LedgerEventRepository struct {
	db *gorm.DB
}

// NewLedgerEventRepository creates a new ledger event repository
func NewLedgerEventRepository(db *gorm.DB) *LedgerEventRepository {
	return &LedgerEventRepository{db: db}
}

// Create appends an event and assigns its sequence number
func (r *LedgerEventRepository) Create(ctx context.Context, event *entities.LedgerEvent) error {
	m := &models.LedgerEvent{
		CampaignID: event.CampaignID,
		EventType:  string(event.Type),
		Actor:      encodeAddress(event.Actor),
		Asset:      encodeAddress(event.Asset),
		Amount:     encodeAmount(event.Amount),
		Fee:        encodeAmount(event.Fee),
		Outcome:    string(event.Outcome),
		CreatedAt:  event.CreatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	event.Seq = m.Seq
	event.CreatedAt = m.CreatedAt
	return nil
}

// ListByCampaign returns a campaign's events in emission order
func (r *LedgerEventRepository) ListByCampaign(ctx context.Context, campaignID uint64) ([]*entities.LedgerEvent, error) {
	var ms []models.LedgerEvent
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("seq ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	events := make([]*entities.LedgerEvent, len(ms))
	for i := range ms {
		m := &ms[i]
		events[i] = &entities.LedgerEvent{
			Seq:        m.Seq,
			CampaignID: m.CampaignID,
			Type:       entities.LedgerEventType(m.EventType),
			Actor:      common.HexToAddress(m.Actor),
			Asset:      common.HexToAddress(m.Asset),
			Amount:     decodeAmount(m.Amount),
			Fee:        decodeAmount(m.Fee),
			Outcome:    entities.CampaignState(m.Outcome),
			CreatedAt:  m.CreatedAt,
		}
	}
	return events, nil
}
