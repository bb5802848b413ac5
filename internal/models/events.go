package models

// NativeToken marks native-currency movements in event records.
const NativeToken = "near"

// Event names as they appear in tagged records.
const (
	EventTokenAdded        = "TokenAdded"
	EventPaymentSuccessful = "PaymentSuccessful"
	EventSweepContract     = "SweepContract"
)

// Event is a structured record emitted by a successful mutating call.
type Event interface {
	EventName() string
}

type TokenAdded struct {
	TokenSymbol  string `json:"token_symbol"`
	TokenAddress string `json:"token_address"`
}

func (TokenAdded) EventName() string { return EventTokenAdded }

// PaymentSettlement is the record of a settled native payment. Amt is the
// net amount forwarded to the receiver; Amount is the invoice amount.
type PaymentSettlement struct {
	PaymentReference      string `json:"payment_reference"`
	TokenEventAddress     string `json:"token_event_address"`
	Caller                string `json:"caller"`
	ReceiverAddress       string `json:"receiver_address"`
	Amount                Amount `json:"amount"`
	Amt                   Amount `json:"amt"`
	FeeAmount             Amount `json:"fee_amount"`
	FeeAddress            string `json:"fee_address"`
	PublicKey             string `json:"public_key"`
	PaymentType           string `json:"payment_type"`
	SenderShouldPayCharge bool   `json:"sender_should_pay_charge"`
	AttachedDeposit       Amount `json:"attached_deposit"`
}

func (PaymentSettlement) EventName() string { return EventPaymentSuccessful }

// SweepRecord is the record of a full drain of the contract balance.
type SweepRecord struct {
	TokenAddress string `json:"token_address"`
	Owner        string `json:"owner"`
	Recipient    string `json:"recipient"`
	Amount       Amount `json:"amount"`
}

func (SweepRecord) EventName() string { return EventSweepContract }
