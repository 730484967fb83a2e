package repositories

import (
	"context"
	"math/big"
	"testing"

	"crowdfund.backend/internal/domain/entities"
	"github.com/stretchr/testify/require"
)

func TestLedgerEventRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewLedgerEventRepository(db)
	ctx := context.Background()

	created := &entities.LedgerEvent{CampaignID: 1, Type: entities.LedgerEventCampaignCreated, Actor: testCreator, Amount: new(big.Int), Fee: new(big.Int)}
	require.NoError(t, repo.Create(ctx, created))
	claimed := &entities.LedgerEvent{CampaignID: 1, Type: entities.LedgerEventFundsClaimed, Actor: testCreator, Asset: testToken, Amount: big.NewInt(107), Fee: big.NewInt(3)}
	require.NoError(t, repo.Create(ctx, claimed))
	require.NoError(t, repo.Create(ctx, &entities.LedgerEvent{CampaignID: 2, Type: entities.LedgerEventCampaignCreated}))
	require.Greater(t, claimed.Seq, created.Seq)

	events, err := repo.ListByCampaign(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, entities.LedgerEventCampaignCreated, events[0].Type)
	require.Equal(t, entities.LedgerEventFundsClaimed, events[1].Type)
	require.Equal(t, "3", events[1].Fee.String())
	require.Equal(t, testToken, events[1].Asset)
}
