package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
)

// MaxFeeBasisPoints is 100%.
const MaxFeeBasisPoints = 10000

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Ledger   LedgerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string `env:"SERVER_PORT" envDefault:"8080"`
	Env  string `env:"SERVER_ENV" envDefault:"development"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"crowdfund"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
}

// JWTConfig holds account token configuration
type JWTConfig struct {
	Secret string        `env:"JWT_SECRET" envDefault:"change-this-in-production"`
	Expiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
}

// LedgerConfig holds the funding ledger parameters
type LedgerConfig struct {
	// FeeBasisPoints is snapshotted into each campaign at creation.
	FeeBasisPoints  uint32        `env:"LEDGER_FEE_BPS" envDefault:"300"`
	FeeRecipient    string        `env:"LEDGER_FEE_RECIPIENT" envDefault:"0x000000000000000000000000000000000000fee0"`
	Owner           string        `env:"LEDGER_OWNER" envDefault:"0x0000000000000000000000000000000000000001"`
	Address         string        `env:"LEDGER_ADDRESS" envDefault:"0x00000000000000000000000000000000000cf000"`
	WatcherInterval time.Duration `env:"LEDGER_WATCHER_INTERVAL" envDefault:"30s"`
}

// FeeRecipientAddress returns the default platform fee recipient
func (c LedgerConfig) FeeRecipientAddress() common.Address {
	return common.HexToAddress(c.FeeRecipient)
}

// OwnerAddress returns the account allowed to run administrative operations
func (c LedgerConfig) OwnerAddress() common.Address {
	return common.HexToAddress(c.Owner)
}

// LedgerAddress returns the account that holds escrowed funds
func (c LedgerConfig) LedgerAddress() common.Address {
	return common.HexToAddress(c.Address)
}

// Validate rejects configurations the ledger cannot run with
func (c *Config) Validate() error {
	if c.Ledger.FeeBasisPoints > MaxFeeBasisPoints {
		return fmt.Errorf("LEDGER_FEE_BPS must be <= %d, got %d", MaxFeeBasisPoints, c.Ledger.FeeBasisPoints)
	}
	for name, addr := range map[string]string{
		"LEDGER_FEE_RECIPIENT": c.Ledger.FeeRecipient,
		"LEDGER_OWNER":         c.Ledger.Owner,
		"LEDGER_ADDRESS":       c.Ledger.Address,
	} {
		if !common.IsHexAddress(addr) || common.HexToAddress(addr) == (common.Address{}) {
			return fmt.Errorf("%s must be a non-zero hex address, got %q", name, addr)
		}
	}
	if c.Ledger.WatcherInterval <= 0 {
		return fmt.Errorf("LEDGER_WATCHER_INTERVAL must be positive")
	}
	return nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
