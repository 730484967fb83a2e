package main

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"crowdfund.backend/internal/config"
	"crowdfund.backend/pkg/jwt"
)

func TestValidateInputs(t *testing.T) {
	if err := validateInputs("0x1111111111111111111111111111111111111111", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateInputs("", time.Hour); err == nil {
		t.Fatal("expected error for missing account")
	}
	if err := validateInputs("not-an-address", time.Hour); err == nil {
		t.Fatal("expected error for invalid account")
	}
	if err := validateInputs("0x1111111111111111111111111111111111111111", -time.Second); err == nil {
		t.Fatal("expected error for negative expiry")
	}
}

func TestBuildToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Expiry: time.Hour}
	account := "0x1111111111111111111111111111111111111111"

	token, err := buildToken(cfg, account, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := jwt.NewJWTService(cfg.Secret, cfg.Expiry).ValidateToken(token)
	if err != nil {
		t.Fatalf("token does not validate: %v", err)
	}
	if claims.Account() != common.HexToAddress(account) {
		t.Fatalf("unexpected account %s", claims.Account().Hex())
	}

	if _, err := jwt.NewJWTService("other", cfg.Expiry).ValidateToken(token); err == nil {
		t.Fatal("expected validation failure with a different secret")
	}
}
