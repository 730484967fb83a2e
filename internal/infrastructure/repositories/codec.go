package repositories

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/volatiletech/null/v8"
)

// decodeAmount parses a stored BigInt column. Columns are only ever written by encodeAmount.
func decodeAmount(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return new(big.Int)
	}
	return v
}

func encodeAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func encodeAddress(a common.Address) string {
	return a.Hex()
}

func toNullTime(t *time.Time) null.Time {
	return null.TimeFromPtr(t)
}

func fromNullTime(t null.Time) *time.Time {
	return t.Ptr()
}
