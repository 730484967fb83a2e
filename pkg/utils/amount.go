package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// MaxAmount is the largest amount the ledger stores, 2^256-1 as on the EVM
var MaxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// ExceedsMaxAmount reports whether v's magnitude does not fit in 256 bits
func ExceedsMaxAmount(v *big.Int) bool {
	return v != nil && v.BitLen() > 256
}

// ParseAmount parses a base-10 integer amount in the asset's smallest unit
func ParseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("amount is required")
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("amount %q is not an integer", s)
	}
	if ExceedsMaxAmount(v) {
		return nil, fmt.Errorf("amount exceeds the maximum of %s", MaxAmount)
	}
	return v, nil
}

// ParseAddress parses a hex account address. Empty input is rejected.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("address %q is not a valid hex address", s)
	}
	return common.HexToAddress(s), nil
}

// ParseAsset parses a payment asset; empty or "native" means the native currency
func ParseAsset(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "native") {
		return common.Address{}, nil
	}
	return ParseAddress(s)
}
