package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dinarex/exchange-backend/models"
)

func verifiedUser() *models.User {
	return &models.User{
		ID:             1,
		MobileVerified: true,
		KYCStatus:      models.KYCApproved,
		USDTAddress:    "TXYZabc123",
		USDTNetwork:    "trc20",
		CliqType:       models.CliqAlias,
		CliqAlias:      "USER123",
	}
}

func buyRequest() *TradeRequest {
	return &TradeRequest{Type: models.TradeBuy, Amount: "100", PaymentMethod: "cliq"}
}

func sellRequest() *TradeRequest {
	return &TradeRequest{Type: models.TradeSell, Amount: "50", Network: "trc20"}
}

func TestValidateTrade_Passes(t *testing.T) {
	assert.NoError(t, ValidateTrade(verifiedUser(), buyRequest(), "proof-ref"))
	assert.NoError(t, ValidateTrade(verifiedUser(), sellRequest(), "proof-ref"))
}

func TestValidateTrade_VerificationGate(t *testing.T) {
	user := verifiedUser()
	user.MobileVerified = false
	assert.ErrorIs(t, ValidateTrade(user, buyRequest(), "proof-ref"), ErrVerificationRequired)

	user = verifiedUser()
	user.KYCStatus = models.KYCPending
	assert.ErrorIs(t, ValidateTrade(user, buyRequest(), "proof-ref"), ErrVerificationRequired)
}

func TestValidateTrade_MissingProof(t *testing.T) {
	assert.ErrorIs(t, ValidateTrade(verifiedUser(), buyRequest(), ""), ErrMissingProof)
}

func TestValidateTrade_AccountNotConfigured(t *testing.T) {
	user := verifiedUser()
	user.USDTAddress = ""
	err := ValidateTrade(user, buyRequest(), "proof-ref")
	var aErr *AccountNotConfiguredError
	assert.ErrorAs(t, err, &aErr)
	assert.Equal(t, "usdt_address", aErr.Setting)

	// Supplying the address makes the same submission pass.
	user.USDTAddress = "TXYZabc123"
	assert.NoError(t, ValidateTrade(user, buyRequest(), "proof-ref"))

	user = verifiedUser()
	user.CliqAlias = ""
	err = ValidateTrade(user, sellRequest(), "proof-ref")
	assert.ErrorAs(t, err, &aErr)
	assert.Equal(t, "cliq_details", aErr.Setting)

	// A number-type CliQ identity counts once its number is present.
	user.CliqType = models.CliqNumber
	user.CliqNumber = "0791234567"
	assert.NoError(t, ValidateTrade(user, sellRequest(), "proof-ref"))
}

func TestValidateShape_Amounts(t *testing.T) {
	cases := []struct {
		amount string
		ok     bool
	}{
		{"100", true},
		{"0.01", true},
		{"99.9", true},
		{"250.00", true},
		{"0", false},
		{"0.00", false},
		{"-5", false},
		{"1.234", false},
		{"1,5", false},
		{".5", false},
		{"abc", false},
		{"", false},
	}

	for _, tc := range cases {
		req := buyRequest()
		req.Amount = tc.amount
		err := ValidateShape(req)
		if tc.ok {
			assert.NoError(t, err, "amount %q", tc.amount)
			continue
		}
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr, "amount %q", tc.amount)
		assert.Equal(t, "amount", vErr.Field, "amount %q", tc.amount)
	}
}

func TestValidateShape_SideFields(t *testing.T) {
	var vErr *ValidationError

	req := sellRequest()
	req.Network = ""
	assert.ErrorAs(t, ValidateShape(req), &vErr)
	assert.Equal(t, "network", vErr.Field)

	req = sellRequest()
	req.Network = "dogechain"
	assert.ErrorAs(t, ValidateShape(req), &vErr)
	assert.Equal(t, "network", vErr.Field)

	req = buyRequest()
	req.PaymentMethod = ""
	assert.ErrorAs(t, ValidateShape(req), &vErr)
	assert.Equal(t, "payment_method", vErr.Field)

	req = buyRequest()
	req.PaymentMethod = "paypal"
	assert.ErrorAs(t, ValidateShape(req), &vErr)
	assert.Equal(t, "payment_method", vErr.Field)

	// Cross-side fields are rejected, not ignored.
	req = buyRequest()
	req.Network = "trc20"
	assert.ErrorAs(t, ValidateShape(req), &vErr)
	assert.Equal(t, "network", vErr.Field)

	req = &TradeRequest{Type: "swap", Amount: "10"}
	assert.ErrorAs(t, ValidateShape(req), &vErr)
	assert.Equal(t, "type", vErr.Field)
}

func TestValidateShape_BasisDefaultsToNative(t *testing.T) {
	req := buyRequest()
	assert.NoError(t, ValidateShape(req))
	assert.Equal(t, BasisNative, req.Basis)

	req = buyRequest()
	req.Basis = "sideways"
	var vErr *ValidationError
	assert.ErrorAs(t, ValidateShape(req), &vErr)
	assert.Equal(t, "basis", vErr.Field)
}
