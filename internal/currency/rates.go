// Package currency provides exchange-rate lookup and nominal-amount
// normalization for consolidated transactions.
package currency

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateTable is a frozen (date, currency code) -> rate lookup built once per
// run. A rate means "1 unit of the currency = rate units of the local
// currency" on that date.
type RateTable struct {
	rates map[string]map[string]decimal.Decimal
}

// NewRateTable creates an empty RateTable.
func NewRateTable() *RateTable {
	return &RateTable{rates: make(map[string]map[string]decimal.Decimal)}
}

// Add registers a rate for a currency on a date. Codes are normalized to
// upper case.
func (t *RateTable) Add(date string, code string, rate decimal.Decimal) {
	day, ok := t.rates[date]
	if !ok {
		day = make(map[string]decimal.Decimal)
		t.rates[date] = day
	}
	day[NormalizeCode(code)] = rate
}

// Rate looks up the rate for a currency on the exact date. There is no
// nearest-date fallback: a missing rate disables conversion for the record.
func (t *RateTable) Rate(date time.Time, code string) (decimal.Decimal, bool) {
	day, ok := t.rates[date.Format("2006-01-02")]
	if !ok {
		return decimal.Zero, false
	}
	rate, ok := day[NormalizeCode(code)]
	return rate, ok
}

// Len returns the number of dates with at least one rate.
func (t *RateTable) Len() int {
	return len(t.rates)
}

// NormalizeCode canonicalizes a currency code for lookups.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
