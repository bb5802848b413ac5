package models

// PaymentRequest is the caller-supplied part of native_token_payment. Amount
// stays a string until the processor parses it.
type PaymentRequest struct {
	Reference             string `json:"reference"`
	PublicKey             string `json:"public_key"`
	ReceiverAddress       string `json:"receiver_address" validate:"required"`
	Amount                string `json:"amount" validate:"required"`
	SenderShouldPayCharge bool   `json:"sender_should_pay_charge"`
	PaymentType           string `json:"payment_type"`
}
