// Package vault moves native value and token balances on the ledger's balance book.
//
// Every call joins the UnitOfWork transaction carried by ctx, so a failed
// transfer rolls back together with the bookkeeping that required it.
package vault

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/domain/repositories"
	"crowdfund.backend/pkg/utils"
)

// Vault implements native and token transfers on top of an AssetRepository
type Vault struct {
	repo repositories.AssetRepository
}

// New creates a vault
func New(repo repositories.AssetRepository) *Vault {
	return &Vault{repo: repo}
}

// BalanceOf returns holder's balance of asset. The zero address is the native currency.
func (v *Vault) BalanceOf(ctx context.Context, holder, asset common.Address) (*big.Int, error) {
	return v.repo.GetBalance(ctx, holder, asset)
}

// Allowance returns how much spender may move out of owner's balance of asset
func (v *Vault) Allowance(ctx context.Context, owner, spender, asset common.Address) (*big.Int, error) {
	return v.repo.GetAllowance(ctx, owner, spender, asset)
}

// Deposit credits holder out of thin air. Only reachable through owner-gated paths.
func (v *Vault) Deposit(ctx context.Context, holder, asset common.Address, amount *big.Int) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	bal, err := v.repo.GetBalance(ctx, holder, asset)
	if err != nil {
		return err
	}
	credited, err := credit(bal, amount)
	if err != nil {
		return err
	}
	return v.repo.SetBalance(ctx, holder, asset, credited)
}

// Approve sets spender's allowance over owner's asset balance, replacing any previous value
func (v *Vault) Approve(ctx context.Context, owner, spender, asset common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("%w: allowance must not be negative", domainerrors.ErrInvalidInput)
	}
	if utils.ExceedsMaxAmount(amount) {
		return fmt.Errorf("%w: allowance exceeds the maximum amount", domainerrors.ErrInvalidInput)
	}
	if asset == (common.Address{}) {
		return fmt.Errorf("%w: native currency has no allowance", domainerrors.ErrInvalidInput)
	}
	return v.repo.SetAllowance(ctx, owner, spender, asset, amount)
}

// Transfer moves amount of asset from one holder to another
func (v *Vault) Transfer(ctx context.Context, from, to, asset common.Address, amount *big.Int) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	fromBal, err := v.repo.GetBalance(ctx, from, asset)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return fmt.Errorf("%w: insufficient balance", domainerrors.ErrTransferFailed)
	}
	if from == to {
		return nil
	}
	toBal, err := v.repo.GetBalance(ctx, to, asset)
	if err != nil {
		return err
	}
	credited, err := credit(toBal, amount)
	if err != nil {
		return err
	}
	if err := v.repo.SetBalance(ctx, from, asset, new(big.Int).Sub(fromBal, amount)); err != nil {
		return err
	}
	return v.repo.SetBalance(ctx, to, asset, credited)
}

// TransferFrom spends spender's allowance to move from's tokens to to
func (v *Vault) TransferFrom(ctx context.Context, spender, from, to, asset common.Address, amount *big.Int) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	allowance, err := v.repo.GetAllowance(ctx, from, spender, asset)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: insufficient allowance", domainerrors.ErrTransferFailed)
	}
	if err := v.Transfer(ctx, from, to, asset, amount); err != nil {
		return err
	}
	return v.repo.SetAllowance(ctx, from, spender, asset, new(big.Int).Sub(allowance, amount))
}

func requirePositive(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive", domainerrors.ErrInvalidInput)
	}
	return nil
}

// credit returns bal+amount, failing when the balance would leave the storable range
func credit(bal, amount *big.Int) (*big.Int, error) {
	sum := new(big.Int).Add(bal, amount)
	if utils.ExceedsMaxAmount(sum) {
		return nil, fmt.Errorf("%w: balance would exceed the maximum amount", domainerrors.ErrTransferFailed)
	}
	return sum, nil
}
