package usecases_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "crowdfund.backend/internal/domain/errors"
)

func TestAssetUsecase_DepositOwnerOnly(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	err := f.assets.Deposit(ctx, backer1, backer1, token, big.NewInt(10))
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	err = f.assets.Deposit(ctx, owner, ledgerAddr, token, big.NewInt(10))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	require.NoError(t, f.assets.Deposit(ctx, owner, backer1, token, big.NewInt(10)))
	got, err := f.assets.BalanceOf(ctx, backer1, token)
	require.NoError(t, err)
	assert.Equal(t, "10", got.String())
}

func TestAssetUsecase_ApproveAndAllowance(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	require.NoError(t, f.assets.Approve(ctx, backer1, ledgerAddr, token, big.NewInt(40)))
	got, err := f.assets.Allowance(ctx, backer1, ledgerAddr, token)
	require.NoError(t, err)
	assert.Equal(t, "40", got.String())

	err = f.assets.Approve(ctx, ledgerAddr, backer1, token, big.NewInt(1))
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	err = f.assets.Approve(ctx, backer1, ledgerAddr, native, big.NewInt(1))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput, "native currency has no allowances")
}

func TestAssetUsecase_Transfer(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.fund(t, backer1, native, big.NewInt(10))

	require.NoError(t, f.assets.Transfer(ctx, backer1, backer2, native, big.NewInt(4)))
	assert.Equal(t, "6", f.balance(t, backer1, native).String())
	assert.Equal(t, "4", f.balance(t, backer2, native).String())

	err := f.assets.Transfer(ctx, backer1, backer2, native, big.NewInt(7))
	assert.ErrorIs(t, err, domainerrors.ErrTransferFailed)

	err = f.assets.Transfer(ctx, backer1, common.Address{}, native, big.NewInt(1))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	err = f.assets.Transfer(ctx, ledgerAddr, backer1, native, big.NewInt(1))
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
