package models

import "time"

type TradeType string

const (
	TradeBuy  TradeType = "buy"
	TradeSell TradeType = "sell"
)

type TransactionStatus string

const (
	StatusPending  TransactionStatus = "pending"
	StatusApproved TransactionStatus = "approved"
)

// Transaction is one buy or sell order. Amount is always the native-side
// quantity (JOD for buy, USDT for sell); rate and commission are captured
// by value at submission time and never change afterwards.
type Transaction struct {
	ID     uint              `gorm:"primaryKey" json:"id"`
	UserID uint              `gorm:"index;not null" json:"user_id"`
	Type   TradeType         `gorm:"not null" json:"type"`
	Status TransactionStatus `gorm:"index;default:pending" json:"status"`

	Amount     string `gorm:"type:numeric(18,2)" json:"amount"`
	Rate       string `gorm:"type:numeric(18,6)" json:"rate"`
	Commission string `gorm:"type:numeric(18,2);default:0" json:"commission"`
	Fee        string `gorm:"type:numeric(18,2);default:0" json:"fee"`

	// Sell only: network the user sends USDT on.
	Network string `json:"network,omitempty"`
	// Buy only: platform rail the user paid JOD through.
	PaymentMethod string `json:"payment_method,omitempty"`

	// Sell only: snapshot of the user's CliQ receiving identity.
	CliqType   CliqType `json:"cliq_type,omitempty"`
	CliqAlias  string   `json:"cliq_alias,omitempty"`
	CliqNumber string   `json:"cliq_number,omitempty"`

	ProofRef string `gorm:"not null" json:"proof_ref"`

	CreatedAt  time.Time  `json:"created_at"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	ApprovedBy *uint      `json:"approved_by,omitempty"`
}
