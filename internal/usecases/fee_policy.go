package usecases

import (
	"math/big"
)

const basisPointsDenominator = 10000

// SplitFee divides total into the platform fee and the creator's share.
// The fee truncates toward zero and the creator receives the remainder, so fee+creator == total.
func SplitFee(total *big.Int, feeBasisPoints uint32) (fee, creator *big.Int) {
	fee = new(big.Int).Mul(total, new(big.Int).SetUint64(uint64(feeBasisPoints)))
	fee.Quo(fee, big.NewInt(basisPointsDenominator))
	creator = new(big.Int).Sub(total, fee)
	return fee, creator
}
