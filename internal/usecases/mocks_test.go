package usecases_test

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"

	"crowdfund.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock CampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, campaign *entities.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) GetByID(ctx context.Context, id uint64) (*entities.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) List(ctx context.Context, limit, offset int) ([]*entities.Campaign, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Campaign), args.Int(1), args.Error(2)
}

func (m *MockCampaignRepository) Update(ctx context.Context, campaign *entities.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) ListUnsettledByAsset(ctx context.Context, asset common.Address) ([]*entities.Campaign, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ListClosedUnannounced(ctx context.Context, now time.Time, limit int) ([]*entities.Campaign, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) MarkCloseAnnounced(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock ContributionRepository
type MockContributionRepository struct {
	mock.Mock
}

func (m *MockContributionRepository) Get(ctx context.Context, campaignID uint64, contributor common.Address) (*entities.Contribution, error) {
	args := m.Called(ctx, campaignID, contributor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contribution), args.Error(1)
}

func (m *MockContributionRepository) Save(ctx context.Context, contribution *entities.Contribution) error {
	args := m.Called(ctx, contribution)
	return args.Error(0)
}

func (m *MockContributionRepository) ListByCampaign(ctx context.Context, campaignID uint64) ([]*entities.Contribution, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Contribution), args.Error(1)
}

// Mock LedgerEventRepository
type MockLedgerEventRepository struct {
	mock.Mock
}

func (m *MockLedgerEventRepository) Create(ctx context.Context, event *entities.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockLedgerEventRepository) ListByCampaign(ctx context.Context, campaignID uint64) ([]*entities.LedgerEvent, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEvent), args.Error(1)
}

// Mock AssetVault
type MockAssetVault struct {
	mock.Mock
}

func (m *MockAssetVault) BalanceOf(ctx context.Context, holder, asset common.Address) (*big.Int, error) {
	args := m.Called(ctx, holder, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockAssetVault) Allowance(ctx context.Context, owner, spender, asset common.Address) (*big.Int, error) {
	args := m.Called(ctx, owner, spender, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockAssetVault) Deposit(ctx context.Context, holder, asset common.Address, amount *big.Int) error {
	args := m.Called(ctx, holder, asset, amount)
	return args.Error(0)
}

func (m *MockAssetVault) Approve(ctx context.Context, owner, spender, asset common.Address, amount *big.Int) error {
	args := m.Called(ctx, owner, spender, asset, amount)
	return args.Error(0)
}

func (m *MockAssetVault) Transfer(ctx context.Context, from, to, asset common.Address, amount *big.Int) error {
	args := m.Called(ctx, from, to, asset, amount)
	return args.Error(0)
}

func (m *MockAssetVault) TransferFrom(ctx context.Context, spender, from, to, asset common.Address, amount *big.Int) error {
	args := m.Called(ctx, spender, from, to, asset, amount)
	return args.Error(0)
}
