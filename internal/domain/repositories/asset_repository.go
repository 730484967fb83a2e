package repositories

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// AssetRepository stores balances and allowances of the ledger's balance book.
// Missing rows read as zero.
type AssetRepository interface {
	GetBalance(ctx context.Context, holder, asset common.Address) (*big.Int, error)
	SetBalance(ctx context.Context, holder, asset common.Address, amount *big.Int) error
	GetAllowance(ctx context.Context, owner, spender, asset common.Address) (*big.Int, error)
	SetAllowance(ctx context.Context, owner, spender, asset common.Address, amount *big.Int) error
}
