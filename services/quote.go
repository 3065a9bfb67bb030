package services

import (
	"github.com/shopspring/decimal"

	"github.com/dinarex/exchange-backend/models"
)

const (
	CurrencyJOD  = "JOD"
	CurrencyUSDT = "USDT"
)

// Basis records which currency side the user typed the amount in.
// Native is JOD for a buy and USDT for a sell; foreign is the opposite.
type Basis string

const (
	BasisNative  Basis = "native"
	BasisForeign Basis = "foreign"
)

// Rates is the pricing snapshot a quote is computed against. It is passed
// in explicitly so the calculator stays pure and deterministic.
type Rates struct {
	BuyRate            decimal.Decimal
	BuyCommissionRate  decimal.Decimal
	SellRate           decimal.Decimal
	SellCommissionRate decimal.Decimal
}

// RatesFromSettings parses the stored settings row into decimals.
// Non-positive rates mean the platform has not been configured yet.
func RatesFromSettings(s *models.PaymentSettings) (Rates, error) {
	var r Rates
	var err error
	if r.BuyRate, err = decimal.NewFromString(s.BuyRate); err != nil {
		return r, ErrRatesNotConfigured
	}
	if r.BuyCommissionRate, err = decimal.NewFromString(s.BuyCommissionRate); err != nil {
		return r, ErrRatesNotConfigured
	}
	if r.SellRate, err = decimal.NewFromString(s.SellRate); err != nil {
		return r, ErrRatesNotConfigured
	}
	if r.SellCommissionRate, err = decimal.NewFromString(s.SellCommissionRate); err != nil {
		return r, ErrRatesNotConfigured
	}
	if !r.BuyRate.IsPositive() || !r.SellRate.IsPositive() {
		return r, ErrRatesNotConfigured
	}
	return r, nil
}

// Quote is the priced result of one submission. Display fields are rounded
// to 2 decimal places; NativeAmount is the canonical amount persisted on
// the transaction (JOD for buy, USDT for sell).
type Quote struct {
	Equivalent         decimal.Decimal `json:"equivalent"`
	EquivalentCurrency string          `json:"equivalent_currency"`
	Commission         decimal.Decimal `json:"commission"`
	CommissionCurrency string          `json:"commission_currency"`
	Final              decimal.Decimal `json:"final"`
	FinalCurrency      string          `json:"final_currency"`
	Rate               decimal.Decimal `json:"rate"`
	NativeAmount       decimal.Decimal `json:"-"`
}

// ComputeQuote prices an amount for the given trade direction and basis.
// Pure function: no I/O, no rounding of intermediates beyond the final
// 2-decimal display rounding.
func ComputeQuote(amount decimal.Decimal, trade models.TradeType, basis Basis, r Rates) Quote {
	one := decimal.NewFromInt(1)

	var q Quote
	switch {
	case trade == models.TradeBuy && basis == BasisForeign:
		// User typed USDT they want; they owe JOD plus commission.
		eq := amount.Mul(r.BuyRate)
		q = Quote{
			Equivalent:         eq,
			EquivalentCurrency: CurrencyJOD,
			Commission:         eq.Mul(r.BuyCommissionRate),
			CommissionCurrency: CurrencyJOD,
			Final:              eq.Mul(one.Add(r.BuyCommissionRate)),
			FinalCurrency:      CurrencyJOD,
			Rate:               r.BuyRate,
			NativeAmount:       eq,
		}
	case trade == models.TradeBuy:
		// User typed JOD they pay; commission comes out of the USDT leg.
		eq := amount.Div(r.BuyRate)
		q = Quote{
			Equivalent:         eq,
			EquivalentCurrency: CurrencyUSDT,
			Commission:         eq.Mul(r.BuyCommissionRate),
			CommissionCurrency: CurrencyUSDT,
			Final:              eq.Mul(one.Sub(r.BuyCommissionRate)),
			FinalCurrency:      CurrencyUSDT,
			Rate:               r.BuyRate,
			NativeAmount:       amount,
		}
	case basis == BasisForeign:
		// Sell, user typed the JOD they want to receive; they must send
		// the equivalent USDT plus commission.
		eq := amount.Div(r.SellRate)
		comm := eq.Mul(r.SellCommissionRate)
		q = Quote{
			Equivalent:         eq,
			EquivalentCurrency: CurrencyUSDT,
			Commission:         comm,
			CommissionCurrency: CurrencyUSDT,
			Final:              eq.Add(comm),
			FinalCurrency:      CurrencyUSDT,
			Rate:               r.SellRate,
			NativeAmount:       eq,
		}
	default:
		// Sell, user typed the USDT they send; commission comes out of
		// the JOD they receive.
		eq := amount.Mul(r.SellRate)
		comm := eq.Mul(r.SellCommissionRate)
		q = Quote{
			Equivalent:         eq,
			EquivalentCurrency: CurrencyJOD,
			Commission:         comm,
			CommissionCurrency: CurrencyJOD,
			Final:              eq.Sub(comm),
			FinalCurrency:      CurrencyJOD,
			Rate:               r.SellRate,
			NativeAmount:       amount,
		}
	}

	q.Equivalent = q.Equivalent.Round(2)
	q.Commission = q.Commission.Round(2)
	q.Final = q.Final.Round(2)
	q.NativeAmount = q.NativeAmount.Round(2)
	return q
}
