package repositories

import (
	"context"
	"errors"
	"math/big"
	"time"

	"crowdfund.backend/internal/infrastructure/models"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetRepository implements the balance book on GORM
type AssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) GetBalance(ctx context.Context, holder, asset common.Address) (*big.Int, error) {
	var m models.AssetBalance
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("holder = ? AND asset = ?", encodeAddress(holder), encodeAddress(asset)).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeAmount(m.Amount), nil
}

func (r *AssetRepository) SetBalance(ctx context.Context, holder, asset common.Address, amount *big.Int) error {
	m := &models.AssetBalance{
		Holder:    encodeAddress(holder),
		Asset:     encodeAddress(asset),
		Amount:    encodeAmount(amount),
		UpdatedAt: time.Now(),
	}
	return GetDB(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "holder"}, {Name: "asset"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(m).Error
}

func (r *AssetRepository) GetAllowance(ctx context.Context, owner, spender, asset common.Address) (*big.Int, error) {
	var m models.AssetAllowance
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("owner = ? AND spender = ? AND asset = ?", encodeAddress(owner), encodeAddress(spender), encodeAddress(asset)).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeAmount(m.Amount), nil
}

func (r *AssetRepository) SetAllowance(ctx context.Context, owner, spender, asset common.Address, amount *big.Int) error {
	m := &models.AssetAllowance{
		Owner:     encodeAddress(owner),
		Spender:   encodeAddress(spender),
		Asset:     encodeAddress(asset),
		Amount:    encodeAmount(amount),
		UpdatedAt: time.Now(),
	}
	return GetDB(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "spender"}, {Name: "asset"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(m).Error
}
