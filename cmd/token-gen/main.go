package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"crowdfund.backend/internal/config"
	"crowdfund.backend/pkg/jwt"
	"crowdfund.backend/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	account := flag.String("account", "", "account address the token is issued for")
	expiry := flag.Duration("expiry", 0, "token lifetime (defaults to JWT_EXPIRY)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	token, err := buildToken(cfg.JWT, *account, *expiry)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}

	fmt.Println("Generated account token")
	fmt.Printf("ACCOUNT=%s\n", *account)
	fmt.Printf("TOKEN=%s\n", token)
}

func validateInputs(account string, expiry time.Duration) error {
	if account == "" {
		return errors.New("account is required")
	}
	if _, err := utils.ParseAddress(account); err != nil {
		return fmt.Errorf("invalid account: %w", err)
	}
	if expiry < 0 {
		return fmt.Errorf("invalid expiry: %s", expiry)
	}
	return nil
}

func buildToken(cfg config.JWTConfig, account string, expiry time.Duration) (string, error) {
	if err := validateInputs(account, expiry); err != nil {
		return "", err
	}
	if expiry == 0 {
		expiry = cfg.Expiry
	}
	addr, _ := utils.ParseAddress(account)
	return jwt.NewJWTService(cfg.Secret, expiry).GenerateToken(addr)
}
