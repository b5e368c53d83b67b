package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Counteragent is a trading-partner entity from the bookkeeping directory,
// keyed by its normalized INN.
type Counteragent struct {
	Inn  Inn       `yaml:"inn"`
	ID   uuid.UUID `yaml:"id"`
	Name string    `yaml:"name"`
}

// PaymentRecord is a pre-registered payment with its accounting dimensions.
// A payment code found in a transaction narrative resolves to one of these.
// A zero UUID means the dimension is not set on the payment.
type PaymentRecord struct {
	Code            string    `yaml:"code"`
	CounteragentID  uuid.UUID `yaml:"counteragent_id"`
	ProjectID       uuid.UUID `yaml:"project_id,omitempty"`
	FinancialCodeID uuid.UUID `yaml:"financial_code_id,omitempty"`
	CurrencyID      uuid.UUID `yaml:"currency_id,omitempty"`
}

// ParsingRule maps a field condition to accounting dimensions. Rules are
// order-significant: the evaluator applies the first rule whose condition
// matches and ignores the rest. A rule may name a counteragent directly or
// indirectly through a referenced payment code.
type ParsingRule struct {
	Column          string    `yaml:"column"`
	Condition       string    `yaml:"condition"`
	CounteragentID  uuid.UUID `yaml:"counteragent_id,omitempty"`
	FinancialCodeID uuid.UUID `yaml:"financial_code_id,omitempty"`
	CurrencyID      uuid.UUID `yaml:"currency_id,omitempty"`
	PaymentCode     string    `yaml:"payment_code,omitempty"`
}

// Currency maps a currency dimension UUID to its ISO code, which is what the
// exchange-rate table is keyed by.
type Currency struct {
	ID   uuid.UUID `yaml:"id"`
	Code string    `yaml:"code"`
}

// ExchangeRate is one row of the exchange-rate directory: on Date, one unit
// of Currency equals Rate units of the local currency.
type ExchangeRate struct {
	Date     string          `yaml:"date"` // YYYY-MM-DD
	Currency string          `yaml:"currency"`
	Rate     decimal.Decimal `yaml:"rate"`
}

// RecordKey is the natural key of a raw statement entry.
type RecordKey struct {
	DocumentKey string
	EntryID     string
}

func (k RecordKey) String() string {
	return k.DocumentKey + "/" + k.EntryID
}

// RawTransaction is one raw bank-statement entry as ingested from the feed.
// The payload fields are immutable; only the case flags and IsProcessed are
// written back by the consolidation pipeline.
type RawTransaction struct {
	DocumentKey          string          `csv:"DocumentKey"`
	EntryID              string          `csv:"EntryID"`
	Date                 string          `csv:"Date"`
	DebitAmount          decimal.Decimal `csv:"DebitAmount"`
	CreditAmount         decimal.Decimal `csv:"CreditAmount"`
	Currency             string          `csv:"Currency"`
	SenderInn            string          `csv:"SenderInn"`
	SenderAccount        string          `csv:"SenderAccount"`
	SenderName           string          `csv:"SenderName"`
	BeneficiaryInn       string          `csv:"BeneficiaryInn"`
	BeneficiaryAccount   string          `csv:"BeneficiaryAccount"`
	BeneficiaryName      string          `csv:"BeneficiaryName"`
	CorrespondentAccount string          `csv:"CorrespondentAccount"`
	Narrative            string          `csv:"Narrative"`
	Category             string          `csv:"Category"`
	DocProdGroup         string          `csv:"DocProdGroup"`

	CaseFlags
	IsProcessed bool `csv:"IsProcessed"`
}

// Key returns the natural key of the entry.
func (t *RawTransaction) Key() RecordKey {
	return RecordKey{DocumentKey: t.DocumentKey, EntryID: t.EntryID}
}

// IsIncoming reports whether the entry is an incoming transfer. An entry
// with a zero debit amount is incoming, anything else is outgoing.
func (t *RawTransaction) IsIncoming() bool {
	return t.DebitAmount.IsZero()
}

// Amount returns the signed account-currency amount of the entry: positive
// for incoming transfers, negative for outgoing ones.
func (t *RawTransaction) Amount() decimal.Decimal {
	if t.IsIncoming() {
		return t.CreditAmount
	}
	return t.DebitAmount.Neg()
}

// ResetProcessing clears the case flags and the processed mark so the entry
// is classified again on the next run.
func (t *RawTransaction) ResetProcessing() {
	t.CaseFlags = CaseFlags{}
	t.IsProcessed = false
}

// FieldByColumn returns the payload field a parsing rule column refers to.
// Unknown column names report false so a misconfigured rule never matches.
func (t *RawTransaction) FieldByColumn(column string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(column)) {
	case "narrative":
		return t.Narrative, true
	case "category":
		return t.Category, true
	case "docprodgroup":
		return t.DocProdGroup, true
	case "sendername":
		return t.SenderName, true
	case "senderaccount":
		return t.SenderAccount, true
	case "beneficiaryname":
		return t.BeneficiaryName, true
	case "beneficiaryaccount":
		return t.BeneficiaryAccount, true
	default:
		return "", false
	}
}

// ConsolidatedTransaction is the enriched record produced for one
// successfully classified raw entry. Exactly one row exists per natural key.
type ConsolidatedTransaction struct {
	DocumentKey      string          `csv:"DocumentKey"`
	EntryID          string          `csv:"EntryID"`
	Date             string          `csv:"Date"` // YYYY-MM-DD
	CounteragentID   uuid.UUID       `csv:"CounteragentID"`
	CounteragentName string          `csv:"CounteragentName"`
	ProjectID        uuid.UUID       `csv:"ProjectID"`
	FinancialCodeID  uuid.UUID       `csv:"FinancialCodeID"`
	CurrencyID       uuid.UUID       `csv:"CurrencyID"`
	PaymentCode      string          `csv:"PaymentCode"`
	AccountCurrency  string          `csv:"AccountCurrency"`
	Amount           decimal.Decimal `csv:"Amount"`
	NominalAmount    decimal.Decimal `csv:"NominalAmount"`
	CaseExplanation  string          `csv:"CaseExplanation"`
}

// Key returns the natural key of the consolidated row.
func (t *ConsolidatedTransaction) Key() RecordKey {
	return RecordKey{DocumentKey: t.DocumentKey, EntryID: t.EntryID}
}

func (t *ConsolidatedTransaction) String() string {
	return fmt.Sprintf("%s %s %s", t.Key(), t.Amount.StringFixed(2), t.AccountCurrency)
}
