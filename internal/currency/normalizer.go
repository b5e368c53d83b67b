package currency

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iceerpgeorgia/ice-erp-sub000/internal/logging"
)

// Normalizer converts account-currency amounts into nominal-currency
// amounts using date-keyed exchange rates against the local currency.
type Normalizer struct {
	rates     *RateTable
	localCode string
	logger    logging.Logger
}

// NewNormalizer creates a Normalizer. localCode is the ledger's local
// currency, the one the exchange-rate table is quoted against.
func NewNormalizer(rates *RateTable, localCode string, logger logging.Logger) *Normalizer {
	return &Normalizer{
		rates:     rates,
		localCode: NormalizeCode(localCode),
		logger:    logger,
	}
}

// Normalize converts amount from the account currency into the nominal
// currency using the rates of the transaction date.
//
// Equal codes pass the amount through. Local -> foreign divides by the
// foreign rate, foreign -> local multiplies by the foreign rate, and
// foreign -> different foreign converts through the local currency. A
// missing or non-positive rate disables conversion for the record: the
// amount is returned unconverted, sign preserved.
func (n *Normalizer) Normalize(amount decimal.Decimal, accountCode, nominalCode string, date time.Time) decimal.Decimal {
	account := NormalizeCode(accountCode)
	nominal := NormalizeCode(nominalCode)

	if account == nominal || nominal == "" {
		return amount
	}

	switch {
	case account == n.localCode:
		rate, ok := n.positiveRate(date, nominal)
		if !ok {
			return amount
		}
		return amount.Div(rate)

	case nominal == n.localCode:
		rate, ok := n.positiveRate(date, account)
		if !ok {
			return amount
		}
		return amount.Mul(rate)

	default:
		accountRate, ok := n.positiveRate(date, account)
		if !ok {
			return amount
		}
		nominalRate, ok := n.positiveRate(date, nominal)
		if !ok {
			return amount
		}
		return amount.Mul(accountRate).Div(nominalRate)
	}
}

// positiveRate looks up a rate and treats missing or non-positive values as
// unusable.
func (n *Normalizer) positiveRate(date time.Time, code string) (decimal.Decimal, bool) {
	rate, ok := n.rates.Rate(date, code)
	if !ok {
		n.logger.Warn("No exchange rate for date, leaving amount unconverted",
			logging.F(logging.FieldCurrency, code),
			logging.F(logging.FieldDate, date.Format("2006-01-02")))
		return decimal.Zero, false
	}
	if !rate.IsPositive() {
		n.logger.Warn("Non-positive exchange rate, leaving amount unconverted",
			logging.F(logging.FieldCurrency, code),
			logging.F(logging.FieldDate, date.Format("2006-01-02")))
		return decimal.Zero, false
	}
	return rate, true
}
