package classifier

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceerpgeorgia/ice-erp-sub000/internal/currency"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/logging"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/models"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/refdata"
)

var (
	acmeID    = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	globexID  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	projectP1 = uuid.MustParse("33333333-3333-3333-3333-333333333331")
	finF1     = uuid.MustParse("44444444-4444-4444-4444-444444444441")
	finF2     = uuid.MustParse("44444444-4444-4444-4444-444444444442")
	curUSD    = uuid.MustParse("55555555-5555-5555-5555-555555555551")
)

const (
	acmeInn   = models.Inn("01234567890")
	globexInn = models.Inn("09876543210")
)

func newTestSnapshot(rules ...models.ParsingRule) *refdata.Snapshot {
	return &refdata.Snapshot{
		Counteragents: map[models.Inn]models.Counteragent{
			acmeInn:   {Inn: acmeInn, ID: acmeID, Name: "ACME LLC"},
			globexInn: {Inn: globexInn, ID: globexID, Name: "Globex Ltd"},
		},
		Payments: map[string]models.PaymentRecord{
			"AB12345": {
				Code:            "AB12345",
				CounteragentID:  globexID,
				ProjectID:       projectP1,
				FinancialCodeID: finF1,
				CurrencyID:      curUSD,
			},
			"ACME-PMT": {
				Code:            "ACME-PMT",
				CounteragentID:  acmeID,
				FinancialCodeID: finF1,
			},
		},
		Rules:      rules,
		Currencies: map[uuid.UUID]string{curUSD: "USD"},
		Rates:      currency.NewRateTable(),
	}
}

func incomingFrom(inn string, narrative string) *models.RawTransaction {
	return &models.RawTransaction{
		DocumentKey:  "DOC-1",
		EntryID:      "1",
		CreditAmount: decimal.NewFromInt(100),
		SenderInn:    inn,
		Narrative:    narrative,
	}
}

func TestExtractIdentity(t *testing.T) {
	incoming := &models.RawTransaction{
		CreditAmount:       decimal.NewFromInt(100),
		SenderInn:          "1234567890",
		SenderAccount:      "GE00SND",
		BeneficiaryInn:     "9999999999",
		BeneficiaryAccount: "GE00BEN",
	}
	id := ExtractIdentity(incoming)
	assert.Equal(t, DirectionIncoming, id.Direction)
	assert.Equal(t, models.Inn("01234567890"), id.Inn)
	assert.Equal(t, "GE00SND", id.Account)

	outgoing := &models.RawTransaction{
		DebitAmount:        decimal.NewFromInt(50),
		SenderInn:          "1234567890",
		SenderAccount:      "GE00SND",
		BeneficiaryInn:     "9876543210",
		BeneficiaryAccount: "GE00BEN",
	}
	id = ExtractIdentity(outgoing)
	assert.Equal(t, DirectionOutgoing, id.Direction)
	assert.Equal(t, models.Inn("09876543210"), id.Inn)
	assert.Equal(t, "GE00BEN", id.Account)
}

func TestExtractIdentityCorrespondentAccountWins(t *testing.T) {
	tx := &models.RawTransaction{
		CreditAmount:         decimal.NewFromInt(100),
		SenderAccount:        "GE00SND",
		CorrespondentAccount: " GE00CORR ",
	}
	assert.Equal(t, "GE00CORR", ExtractIdentity(tx).Account)
}

func TestPhase1InnMatched(t *testing.T) {
	// A ten-digit INN normalizes to eleven digits before the lookup.
	c := New(newTestSnapshot(), logging.NewMockLogger())
	result := c.Classify(incomingFrom("1234567890", ""))

	assert.True(t, result.Flags.InnMatched)
	assert.False(t, result.Flags.InnBlank)
	assert.False(t, result.Flags.InnNotFound)
	assert.Equal(t, acmeID, result.CounteragentID)
	assert.Equal(t, 0, c.Missing().Len())
}

func TestPhase1InnBlank(t *testing.T) {
	c := New(newTestSnapshot(), logging.NewMockLogger())
	result := c.Classify(incomingFrom("   ", ""))

	assert.False(t, result.Flags.InnMatched)
	assert.True(t, result.Flags.InnBlank)
	assert.False(t, result.Flags.InnNotFound)
	assert.False(t, result.Bound())
}

func TestPhase1InnNotFound(t *testing.T) {
	c := New(newTestSnapshot(), logging.NewMockLogger())
	result := c.Classify(incomingFrom("5555555555", ""))

	assert.False(t, result.Flags.InnMatched)
	assert.False(t, result.Flags.InnBlank)
	assert.True(t, result.Flags.InnNotFound)
	assert.False(t, result.Bound())

	missing := c.Missing().Ranked()
	require.Len(t, missing, 1)
	assert.Equal(t, models.Inn("05555555555"), missing[0].Inn)
	assert.Equal(t, 1, missing[0].Count)
	assert.Equal(t, []string{"DOC-1/1"}, missing[0].SampleKeys)
}

func TestPhase2PaymentMatchedFillsDimensions(t *testing.T) {
	c := New(newTestSnapshot(), logging.NewMockLogger())
	result := c.Classify(incomingFrom("9876543210", "payment_id: AB12345"))

	// Identity already bound to the same counteragent the payment names.
	assert.True(t, result.Flags.InnMatched)
	assert.True(t, result.Flags.PaymentMatched)
	assert.False(t, result.Flags.PaymentConflict)
	assert.Equal(t, globexID, result.CounteragentID)
	assert.Equal(t, "AB12345", result.PaymentCode)
	assert.Equal(t, projectP1, result.ProjectID)
	assert.Equal(t, finF1, result.FinancialCodeID)
	assert.Equal(t, curUSD, result.CurrencyID)
}

func TestPhase2PaymentBindsUnboundIdentity(t *testing.T) {
	c := New(newTestSnapshot(), logging.NewMockLogger())
	result := c.Classify(incomingFrom("", "payment_id: AB12345"))

	assert.True(t, result.Flags.InnBlank)
	assert.True(t, result.Flags.PaymentMatched)
	assert.Equal(t, globexID, result.CounteragentID)
}

func TestPhase2PaymentConflictKeepsIdentity(t *testing.T) {
	// ACME bound by INN, but AB12345 belongs to Globex.
	c := New(newTestSnapshot(), logging.NewMockLogger())
	result := c.Classify(incomingFrom("1234567890", "payment_id: AB12345"))

	assert.True(t, result.Flags.PaymentConflict)
	assert.False(t, result.Flags.PaymentMatched)
	assert.Equal(t, acmeID, result.CounteragentID)

	// Dimensions still fill the unset slots.
	assert.Equal(t, projectP1, result.ProjectID)
	assert.Equal(t, finF1, result.FinancialCodeID)
	assert.Equal(t, curUSD, result.CurrencyID)
}

func TestPhase2UnknownCodeIsNoOp(t *testing.T) {
	c := New(newTestSnapshot(), logging.NewMockLogger())
	result := c.Classify(incomingFrom("1234567890", "payment_id: NOPE99"))

	assert.False(t, result.Flags.PaymentMatched)
	assert.False(t, result.Flags.PaymentConflict)
	assert.Empty(t, result.PaymentCode)
}

func TestPhase3RuleOverridesPayment(t *testing.T) {
	rule := models.ParsingRule{
		Column:          "DocProdGroup",
		Condition:       "COM",
		FinancialCodeID: finF2,
	}
	c := New(newTestSnapshot(rule), logging.NewMockLogger())

	tx := incomingFrom("9876543210", "payment_id: AB12345")
	tx.DocProdGroup = "COM"
	result := c.Classify(tx)

	assert.True(t, result.Flags.PaymentMatched)
	assert.True(t, result.Flags.RuleMatched)
	assert.True(t, result.Flags.RuleOverride, "rule changed a payment-set financial code")
	assert.False(t, result.Flags.RuleConflict)
	assert.Equal(t, finF2, result.FinancialCodeID)
	// Dimensions the rule does not carry keep the payment's values.
	assert.Equal(t, projectP1, result.ProjectID)
	assert.Equal(t, curUSD, result.CurrencyID)
}

func TestPhase3RuleWithoutChangeIsNoOverride(t *testing.T) {
	rule := models.ParsingRule{
		Column:          "DocProdGroup",
		Condition:       "COM",
		FinancialCodeID: finF1, // same value the payment set
	}
	c := New(newTestSnapshot(rule), logging.NewMockLogger())

	tx := incomingFrom("9876543210", "payment_id: AB12345")
	tx.DocProdGroup = "COM"
	result := c.Classify(tx)

	assert.True(t, result.Flags.RuleMatched)
	assert.False(t, result.Flags.RuleOverride)
	assert.Equal(t, finF1, result.FinancialCodeID)
}

func TestPhase3RuleConflictDiscardsSuggestion(t *testing.T) {
	rule := models.ParsingRule{
		Column:          "Category",
		Condition:       "UTILITIES",
		CounteragentID:  globexID,
		FinancialCodeID: finF2,
	}
	c := New(newTestSnapshot(rule), logging.NewMockLogger())

	tx := incomingFrom("1234567890", "")
	tx.Category = "UTILITIES"
	result := c.Classify(tx)

	assert.True(t, result.Flags.RuleConflict)
	assert.False(t, result.Flags.RuleMatched)
	assert.False(t, result.Flags.RuleOverride)
	// Phase-1 identity always wins.
	assert.Equal(t, acmeID, result.CounteragentID)
	// Parameters are still authoritative.
	assert.Equal(t, finF2, result.FinancialCodeID)
}

func TestPhase3RuleBindsViaReferencedPayment(t *testing.T) {
	rule := models.ParsingRule{
		Column:      "Category",
		Condition:   "SERVICES",
		PaymentCode: "AB12345",
	}
	c := New(newTestSnapshot(rule), logging.NewMockLogger())

	tx := incomingFrom("", "no code here at all")
	tx.Category = "SERVICES"
	result := c.Classify(tx)

	assert.True(t, result.Flags.RuleMatched)
	assert.Equal(t, globexID, result.CounteragentID)
	assert.Equal(t, projectP1, result.ProjectID)
	assert.Equal(t, finF1, result.FinancialCodeID)
	assert.Equal(t, curUSD, result.CurrencyID)
}

func TestPhase3FirstMatchWins(t *testing.T) {
	first := models.ParsingRule{Column: "Category", Condition: "COM", FinancialCodeID: finF1}
	second := models.ParsingRule{Column: "Category", Condition: "COM", FinancialCodeID: finF2}
	c := New(newTestSnapshot(first, second), logging.NewMockLogger())

	tx := incomingFrom("", "")
	tx.Category = "COM"
	result := c.Classify(tx)

	assert.Equal(t, finF1, result.FinancialCodeID)
}

func TestPhase3ConditionTrimsValue(t *testing.T) {
	rule := models.ParsingRule{Column: "Category", Condition: "COM", FinancialCodeID: finF2}
	c := New(newTestSnapshot(rule), logging.NewMockLogger())

	tx := incomingFrom("", "")
	tx.Category = "  COM  "
	result := c.Classify(tx)

	assert.True(t, result.Flags.RuleMatched)
}

func TestPhase3NoMatchIsNoOp(t *testing.T) {
	rule := models.ParsingRule{Column: "Category", Condition: "COM", FinancialCodeID: finF2}
	c := New(newTestSnapshot(rule), logging.NewMockLogger())

	result := c.Classify(incomingFrom("1234567890", ""))

	assert.False(t, result.Flags.RuleMatched)
	assert.False(t, result.Flags.RuleConflict)
	assert.Equal(t, uuid.Nil, result.FinancialCodeID)
}

// TestFlagInvariants runs a spread of records through the classifier and
// checks the flag invariants hold for every one of them.
func TestFlagInvariants(t *testing.T) {
	rules := []models.ParsingRule{
		{Column: "DocProdGroup", Condition: "COM", FinancialCodeID: finF2},
		{Column: "Category", Condition: "UTILITIES", CounteragentID: globexID},
	}
	c := New(newTestSnapshot(rules...), logging.NewMockLogger())

	narratives := []string{"", "payment_id: AB12345", "payment_id: NOPE99", "#ACME-PMT", "id: AB12345"}
	inns := []string{"", "1234567890", "9876543210", "5555555555"}
	groups := []string{"", "COM"}
	categories := []string{"", "UTILITIES"}

	entry := 0
	for _, narrative := range narratives {
		for _, inn := range inns {
			for _, group := range groups {
				for _, category := range categories {
					entry++
					tx := incomingFrom(inn, narrative)
					tx.DocProdGroup = group
					tx.Category = category
					result := c.Classify(tx)
					f := result.Flags

					ones := 0
					for _, b := range []bool{f.InnMatched, f.InnBlank, f.InnNotFound} {
						if b {
							ones++
						}
					}
					assert.Equal(t, 1, ones, "cases 1-3 for entry %d", entry)
					assert.False(t, f.PaymentMatched && f.PaymentConflict, "cases 4/5 for entry %d", entry)
					assert.False(t, f.RuleMatched && f.RuleConflict, "cases 6/7 for entry %d", entry)
					if f.RuleOverride {
						assert.True(t, f.PaymentMatched && f.RuleMatched, "case 8 for entry %d", entry)
					}
				}
			}
		}
	}
}

// TestIdentityImmutable verifies that once phase 1 binds an identity, no
// combination of payments and rules changes it.
func TestIdentityImmutable(t *testing.T) {
	rules := []models.ParsingRule{
		{Column: "Category", Condition: "UTILITIES", CounteragentID: globexID},
	}
	c := New(newTestSnapshot(rules...), logging.NewMockLogger())

	tx := incomingFrom("1234567890", "payment_id: AB12345")
	tx.Category = "UTILITIES"
	result := c.Classify(tx)

	assert.Equal(t, acmeID, result.CounteragentID)
	assert.True(t, result.Flags.PaymentConflict)
	assert.True(t, result.Flags.RuleConflict)
}
