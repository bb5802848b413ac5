// Command admin_seed prepares a gateway deployment: it initializes the
// contract, funds settlement accounts and mints caller tokens.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"konnadex/internal/config"
	"konnadex/internal/logger"
	"konnadex/internal/models"
	"konnadex/internal/repositories"
	"konnadex/internal/services/gateway"
	"konnadex/internal/services/settlement"
	"konnadex/internal/utils"
)

func main() {
	initContract := flag.Bool("init", false, "initialize the contract from GATEWAY_* settings")
	fund := flag.String("fund", "", "comma separated account=amount pairs to mint")
	token := flag.String("token", "", "account to issue a bearer token for")
	ttl := flag.Duration("ttl", 24*time.Hour, "bearer token lifetime")
	flag.Parse()

	config.LoadEnv()
	cfg := config.Load()

	if *token != "" {
		signed, err := utils.GenerateToken(*token, cfg.JWTSecret, *ttl)
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(signed)
	}

	if !*initContract && *fund == "" {
		return
	}

	zl, err := logger.NewZapLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	db, err := repositories.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Printf("Failed to close database connection: %v", err)
		}
	}()

	ctx := context.Background()
	ledger := settlement.NewService(repositories.NewAccountRepository(db), zl)

	if *initContract {
		if err := initialize(ctx, cfg.Gateway, repositories.NewStateRepository(db), ledger, zl); err != nil {
			log.Fatalf("Failed to initialize contract: %v", err)
		}
	}

	if *fund != "" {
		grants, err := parseGrants(*fund)
		if err != nil {
			log.Fatalf("Invalid -fund value: %v", err)
		}
		for account, amount := range grants {
			if err := ledger.Mint(ctx, account, amount); err != nil {
				log.Fatalf("Failed to fund %s: %v", account, err)
			}
		}
	}
}

func initialize(ctx context.Context, cfg config.GatewayConfig, state repositories.StateRepository, ledger settlement.Service, zl logger.Logger) error {
	if cfg.Owner == "" {
		return fmt.Errorf("GATEWAY_OWNER must be set")
	}
	charge, err := models.ParseAmount(cfg.GatewayCharge)
	if err != nil {
		return fmt.Errorf("GATEWAY_CHARGE: %w", err)
	}
	converter, err := models.ParseAmount(cfg.GatewayAmountConverter)
	if err != nil {
		return fmt.Errorf("GATEWAY_AMOUNT_CONVERTER: %w", err)
	}

	contract := gateway.NewContract(cfg.ContractAccount, state, ledger, nil, zl, nil)
	_, err = contract.Init(ctx, gateway.Call{Caller: cfg.ContractAccount}, gateway.InitParams{
		Owner:                  cfg.Owner,
		GatewayCharge:          charge,
		GatewayAmountConverter: converter,
	})
	if errors.Is(err, gateway.ErrAlreadyInitialized) {
		zl.Info("contract already initialized", map[string]any{"contract": cfg.ContractAccount})
		return nil
	}
	return err
}

// parseGrants reads "alice.near=100,bob.near=5" into amounts per account.
func parseGrants(s string) (map[string]models.Amount, error) {
	grants := make(map[string]models.Amount)
	for _, pair := range strings.Split(s, ",") {
		account, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || account == "" {
			return nil, fmt.Errorf("%q is not account=amount", pair)
		}
		amount, err := models.ParseAmount(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", account, err)
		}
		grants[account] = amount
	}
	return grants, nil
}
