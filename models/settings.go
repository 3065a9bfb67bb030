package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentSettings is a singleton row (id=1). Admin updates replace the
// whole row so a quote never sees a rate from one edit and a commission
// from another.
type PaymentSettings struct {
	ID                 uint   `gorm:"primaryKey" json:"-"`
	BuyRate            string `gorm:"type:numeric(18,6)" json:"buy_rate"`
	BuyCommissionRate  string `gorm:"type:numeric(8,6)" json:"buy_commission_rate"`
	SellRate           string `gorm:"type:numeric(18,6)" json:"sell_rate"`
	SellCommissionRate string `gorm:"type:numeric(8,6)" json:"sell_commission_rate"`

	// Platform receiving addresses keyed by network ("trc20", "erc20",
	// "bep20") and by method ("cliq_alias", "cliq_number", "wallet").
	ReceivingAddresses datatypes.JSONMap `json:"receiving_addresses"`

	UpdatedAt time.Time `json:"updated_at"`
}
