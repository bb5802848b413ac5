package cache

import (
	"fmt"
	"strings"
)

type EntityType string

const (
	EntityLedgerState EntityType = "ledger_state"
	EntityToken       EntityType = "token"
)

type KeyType string

const (
	KeyContract KeyType = "contract"
	KeySymbol   KeyType = "symbol"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}

// GenerateScopedKey creates a key for an entity that lives under a contract,
// e.g. token:contract:gateway.near:symbol:BUSD.
func GenerateScopedKey(entity EntityType, contract string, keyType KeyType, value interface{}) string {
	return strings.Join([]string{
		GenerateKey(entity, KeyContract, contract),
		fmt.Sprintf("%s:%v", keyType, value),
	}, ":")
}
