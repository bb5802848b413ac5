package models

import (
	"time"

	"github.com/google/uuid"
)

// Transfer kinds recorded by the settlement layer
const (
	TransferKindDeposit  = "deposit"
	TransferKindTransfer = "transfer"
	TransferKindMint     = "mint"
)

// Transfer is an instruction to move native funds out of the contract.
// A Drain transfer moves whatever balance the contract holds at settlement.
type Transfer struct {
	Recipient string `json:"recipient"`
	Amount    Amount `json:"amount"`
	Drain     bool   `json:"drain,omitempty"`
}

// TransferBatch is everything one call settles atomically: the deposit
// attached by From and the outgoing transfers from Contract.
type TransferBatch struct {
	ID        uuid.UUID  `json:"id"`
	Contract  string     `json:"contract"`
	From      string     `json:"from"`
	Deposit   Amount     `json:"deposit"`
	Transfers []Transfer `json:"transfers"`
}

// Account is a settlement-layer balance.
type Account struct {
	ID        string    `gorm:"primarykey" json:"account_id"`
	Balance   Amount    `gorm:"type:numeric(78,0);not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransferRecord is one settled movement of funds.
type TransferRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	BatchID   uuid.UUID `gorm:"type:uuid;index;not null" json:"batch_id"`
	Kind      string    `gorm:"not null" json:"kind"`
	Sender    string    `gorm:"index" json:"sender"`
	Recipient string    `gorm:"index;not null" json:"recipient"`
	Amount    Amount    `gorm:"type:numeric(78,0);not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
