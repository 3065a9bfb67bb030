package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/dinarex/exchange-backend/models"
)

// The settings table holds exactly one row.
const settingsRowID = 1

// SettingsService owns the platform rate/commission configuration.
// Updates are whole-row replacements so a reader never observes a rate
// from one edit combined with a commission from another.
type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the current configuration, creating a zeroed row on first
// read. Zero rates block trading until an admin configures real ones.
func (s *SettingsService) Get() (*models.PaymentSettings, error) {
	var ps models.PaymentSettings
	err := s.db.First(&ps, settingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ps = models.PaymentSettings{
			ID:                 settingsRowID,
			BuyRate:            "0",
			BuyCommissionRate:  "0",
			SellRate:           "0",
			SellCommissionRate: "0",
			ReceivingAddresses: datatypes.JSONMap{},
		}
		if err := s.db.Create(&ps).Error; err != nil {
			return nil, &PersistenceError{Op: "create default settings", Err: err}
		}
		return &ps, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load settings", Err: err}
	}
	return &ps, nil
}

// Replace swaps in a complete new configuration. Admin only, enforced at
// the HTTP boundary.
func (s *SettingsService) Replace(ps *models.PaymentSettings) error {
	if err := validateSettings(ps); err != nil {
		return err
	}
	ps.ID = settingsRowID
	if ps.ReceivingAddresses == nil {
		ps.ReceivingAddresses = datatypes.JSONMap{}
	}
	if err := s.db.Save(ps).Error; err != nil {
		return &PersistenceError{Op: "replace settings", Err: err}
	}
	return nil
}

func validateSettings(ps *models.PaymentSettings) error {
	one := decimal.NewFromInt(1)

	for field, value := range map[string]string{
		"buy_rate":  ps.BuyRate,
		"sell_rate": ps.SellRate,
	} {
		rate, err := decimal.NewFromString(value)
		if err != nil || !rate.IsPositive() {
			return &ValidationError{Field: field, Message: "must be a positive decimal"}
		}
	}

	for field, value := range map[string]string{
		"buy_commission_rate":  ps.BuyCommissionRate,
		"sell_commission_rate": ps.SellCommissionRate,
	} {
		c, err := decimal.NewFromString(value)
		if err != nil || c.IsNegative() || c.GreaterThan(one) {
			return &ValidationError{Field: field, Message: "must be a fraction between 0 and 1"}
		}
	}

	return nil
}
