package usecases_test

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crowdfund.backend/internal/domain/entities"
	"crowdfund.backend/internal/infrastructure/models"
	"crowdfund.backend/internal/infrastructure/repositories"
	"crowdfund.backend/internal/infrastructure/vault"
	"crowdfund.backend/internal/usecases"
)

var (
	owner        = common.HexToAddress("0x0000000000000000000000000000000000000001")
	creator      = common.HexToAddress("0x1111111111111111111111111111111111111111")
	backer1      = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	backer2      = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	feeRecipient = common.HexToAddress("0x000000000000000000000000000000000000fee0")
	ledgerAddr   = common.HexToAddress("0x00000000000000000000000000000000000cf000")
	token        = common.HexToAddress("0x3333333333333333333333333333333333333333")
	native       = entities.NativeAsset
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type ledgerFixture struct {
	ledger *usecases.LedgerUsecase
	assets *usecases.AssetUsecase
	clock  *fakeClock
	vault  *vault.Vault
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	v := vault.New(repositories.NewAssetRepository(db))
	seq := usecases.NewSequencer(repositories.NewUnitOfWork(db))
	params := usecases.LedgerParams{
		FeeBasisPoints: 300,
		FeeRecipient:   feeRecipient,
		Owner:          owner,
		Address:        ledgerAddr,
	}

	return &ledgerFixture{
		ledger: usecases.NewLedgerUsecase(
			repositories.NewCampaignRepository(db),
			repositories.NewContributionRepository(db),
			repositories.NewLedgerEventRepository(db),
			v, seq, clock, params, nil,
		),
		assets: usecases.NewAssetUsecase(v, seq, params),
		clock:  clock,
		vault:  v,
	}
}

// ether scales n by 10^18 the way parseEther does
func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func (f *ledgerFixture) createCampaign(t *testing.T, goal *big.Int, asset common.Address) uint64 {
	t.Helper()
	assetStr := ""
	if asset != native {
		assetStr = asset.Hex()
	}
	view, err := f.ledger.CreateCampaign(context.Background(), creator, &entities.CreateCampaignInput{
		Creator:           creator.Hex(),
		CreatorName:       "alice",
		Title:             "Community garden",
		Goal:              goal.String(),
		Deadline:          f.clock.Now().Add(time.Hour).Unix(),
		PaymentAsset:      assetStr,
		FeeRecipient:      feeRecipient.Hex(),
		MetadataReference: "ipfs://metadata",
	})
	require.NoError(t, err)
	return view.ID
}

func (f *ledgerFixture) fund(t *testing.T, holder, asset common.Address, amount *big.Int) {
	t.Helper()
	require.NoError(t, f.assets.Deposit(context.Background(), owner, holder, asset, amount))
}

func (f *ledgerFixture) contributeToken(t *testing.T, backer common.Address, id uint64, amount *big.Int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.assets.Approve(ctx, backer, ledgerAddr, token, amount))
	_, err := f.ledger.Contribute(ctx, backer, id, amount)
	require.NoError(t, err)
}

func (f *ledgerFixture) balance(t *testing.T, holder, asset common.Address) *big.Int {
	t.Helper()
	b, err := f.vault.BalanceOf(context.Background(), holder, asset)
	require.NoError(t, err)
	return b
}

// pastDeadline moves the clock one second beyond the one hour deadline
func (f *ledgerFixture) pastDeadline() {
	f.clock.Advance(time.Hour + time.Second)
}
