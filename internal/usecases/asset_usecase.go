package usecases

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/pkg/logger"
)

// AssetUsecase exposes the balance book to accounts: approvals, transfers and owner deposits.
// It shares the ledger's sequencer so balance changes never interleave with ledger operations.
type AssetUsecase struct {
	vault  AssetVault
	seq    *Sequencer
	params LedgerParams
}

// NewAssetUsecase creates a new asset usecase
func NewAssetUsecase(vault AssetVault, seq *Sequencer, params LedgerParams) *AssetUsecase {
	return &AssetUsecase{vault: vault, seq: seq, params: params}
}

// Approve lets spender (normally the ledger) pull up to amount of caller's token
func (u *AssetUsecase) Approve(ctx context.Context, caller, spender, asset common.Address, amount *big.Int) error {
	if caller == u.params.Address {
		return domainerrors.Wrap(domainerrors.ErrForbidden, "the ledger account cannot grant allowances")
	}
	err := u.seq.Run(ctx, func(ctx context.Context) error {
		return u.vault.Approve(ctx, caller, spender, asset, amount)
	})
	logger.Debug(ctx, "allowance set", zap.String("spender", spender.Hex()), zap.String("asset", asset.Hex()), zap.Error(err))
	return err
}

// Transfer sends caller's funds to another account. Sending to the ledger is how stray
// balance ends up in escrow outside any campaign.
func (u *AssetUsecase) Transfer(ctx context.Context, caller, to, asset common.Address, amount *big.Int) error {
	if caller == u.params.Address {
		return domainerrors.Wrap(domainerrors.ErrForbidden, "escrow leaves the ledger only through settlement")
	}
	if to == (common.Address{}) {
		return domainerrors.BadRequest("recipient must be a non-zero address")
	}
	return u.seq.Run(ctx, func(ctx context.Context) error {
		return u.vault.Transfer(ctx, caller, to, asset, amount)
	})
}

// Deposit credits holder with freshly issued balance. Owner only.
func (u *AssetUsecase) Deposit(ctx context.Context, caller, holder, asset common.Address, amount *big.Int) error {
	if caller != u.params.Owner {
		return domainerrors.Wrap(domainerrors.ErrForbidden, "only the ledger owner can deposit")
	}
	if holder == u.params.Address {
		return domainerrors.BadRequest("deposits into the ledger account are not allowed")
	}
	err := u.seq.Run(ctx, func(ctx context.Context) error {
		return u.vault.Deposit(ctx, holder, asset, amount)
	})
	if err == nil {
		logger.Info(ctx, "deposit credited", zap.String("holder", holder.Hex()), zap.String("asset", asset.Hex()), zap.String("amount", amount.String()))
	}
	return err
}

// BalanceOf returns holder's balance of asset
func (u *AssetUsecase) BalanceOf(ctx context.Context, holder, asset common.Address) (*big.Int, error) {
	return u.vault.BalanceOf(ctx, holder, asset)
}

// Allowance returns how much spender may still pull from owner
func (u *AssetUsecase) Allowance(ctx context.Context, owner, spender, asset common.Address) (*big.Int, error) {
	return u.vault.Allowance(ctx, owner, spender, asset)
}
