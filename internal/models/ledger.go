package models

import "time"

// Default fee parameters: a 0.1% gateway fee.
const (
	DefaultGatewayCharge          = 1
	DefaultGatewayAmountConverter = 1000
)

// LedgerState is the persisted singleton of one gateway contract. The fee
// rate is GatewayCharge/GatewayAmountConverter of the invoice amount.
type LedgerState struct {
	ID                     uint      `gorm:"primarykey" json:"-"`
	Contract               string    `gorm:"uniqueIndex;not null" json:"contract"`
	Owner                  string    `gorm:"not null" json:"owner"`
	GatewayCharge          Amount    `gorm:"type:numeric(78,0);not null" json:"gateway_charge"`
	GatewayAmountConverter Amount    `gorm:"type:numeric(78,0);not null" json:"gateway_amount_converter"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// Token maps a symbol to the contract account of a fungible token.
type Token struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Contract  string    `gorm:"uniqueIndex:idx_token_contract_symbol;not null" json:"-"`
	Symbol    string    `gorm:"uniqueIndex:idx_token_contract_symbol;not null" json:"token_symbol"`
	Address   string    `gorm:"not null" json:"token_address"`
	CreatedAt time.Time `json:"created_at"`
}
