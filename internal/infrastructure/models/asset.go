package models

import "time"

type AssetBalance struct {
	Holder    string `gorm:"type:varchar(42);primaryKey"`
	Asset     string `gorm:"type:varchar(42);primaryKey"`
	Amount    string `gorm:"type:varchar(100);not null"` // BigInt
	UpdatedAt time.Time
}

type AssetAllowance struct {
	Owner     string `gorm:"type:varchar(42);primaryKey"`
	Spender   string `gorm:"type:varchar(42);primaryKey"`
	Asset     string `gorm:"type:varchar(42);primaryKey"`
	Amount    string `gorm:"type:varchar(100);not null"` // BigInt
	UpdatedAt time.Time
}

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Campaign{},
		&Contribution{},
		&LedgerEvent{},
		&AssetBalance{},
		&AssetAllowance{},
	}
}
