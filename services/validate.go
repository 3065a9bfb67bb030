package services

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/dinarex/exchange-backend/models"
)

var SupportedNetworks = []string{"trc20", "erc20", "bep20"}

var SupportedPaymentMethods = []string{"cliq", "wallet", "cash"}

// Positive decimal string with at most 2 fractional digits, as typed.
var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// TradeRequest is a user's buy/sell submission before pricing.
type TradeRequest struct {
	Type          models.TradeType `json:"type"`
	Amount        string           `json:"amount"`
	Basis         Basis            `json:"basis"`
	Network       string           `json:"network"`
	PaymentMethod string           `json:"payment_method"`
}

// ValidateTrade gates a submission before a transaction may be created.
// Rules run in order and fail fast: verification gate, payload shape,
// proof presence, then settlement-leg account readiness. No persistence.
func ValidateTrade(user *models.User, req *TradeRequest, proofRef string) error {
	if !user.MobileVerified || user.KYCStatus != models.KYCApproved {
		return ErrVerificationRequired
	}

	if err := ValidateShape(req); err != nil {
		return err
	}

	if proofRef == "" {
		return ErrMissingProof
	}

	// The settlement leg must be configured on the profile: a buy pays
	// USDT out to the user, a sell pays JOD out via CliQ.
	switch req.Type {
	case models.TradeBuy:
		if user.USDTAddress == "" {
			return &AccountNotConfiguredError{Setting: "usdt_address"}
		}
	case models.TradeSell:
		if !hasCliqDetails(user) {
			return &AccountNotConfiguredError{Setting: "cliq_details"}
		}
	}

	return nil
}

// ValidateShape checks only the payload contract, without the user gates.
// Also used to sanity-check quote previews. Normalizes an empty basis to
// native.
func ValidateShape(req *TradeRequest) error {
	if req.Type != models.TradeBuy && req.Type != models.TradeSell {
		return &ValidationError{Field: "type", Message: "must be \"buy\" or \"sell\""}
	}

	if req.Basis == "" {
		req.Basis = BasisNative
	}
	if req.Basis != BasisNative && req.Basis != BasisForeign {
		return &ValidationError{Field: "basis", Message: "must be \"native\" or \"foreign\""}
	}

	if !amountPattern.MatchString(req.Amount) {
		return &ValidationError{Field: "amount", Message: "must be a decimal with at most 2 fractional digits"}
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return &ValidationError{Field: "amount", Message: "must be greater than zero"}
	}

	switch req.Type {
	case models.TradeSell:
		if req.Network == "" {
			return &ValidationError{Field: "network", Message: "required for sell orders"}
		}
		if !contains(SupportedNetworks, req.Network) {
			return &ValidationError{Field: "network", Message: "unsupported network"}
		}
		if req.PaymentMethod != "" {
			return &ValidationError{Field: "payment_method", Message: "not allowed for sell orders"}
		}
	case models.TradeBuy:
		if req.PaymentMethod == "" {
			return &ValidationError{Field: "payment_method", Message: "required for buy orders"}
		}
		if !contains(SupportedPaymentMethods, req.PaymentMethod) {
			return &ValidationError{Field: "payment_method", Message: "unsupported payment method"}
		}
		if req.Network != "" {
			return &ValidationError{Field: "network", Message: "not allowed for buy orders"}
		}
	}

	return nil
}

func hasCliqDetails(user *models.User) bool {
	switch user.CliqType {
	case models.CliqAlias:
		return user.CliqAlias != ""
	case models.CliqNumber:
		return user.CliqNumber != ""
	default:
		return false
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
