package classifier

import (
	"strings"

	"github.com/google/uuid"

	"github.com/iceerpgeorgia/ice-erp-sub000/internal/logging"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/models"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/refdata"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/textutils"
)

// Result is the immutable outcome of classifying one statement entry.
// A zero UUID means the dimension was never resolved.
type Result struct {
	CounteragentID  uuid.UUID
	ProjectID       uuid.UUID
	FinancialCodeID uuid.UUID
	CurrencyID      uuid.UUID
	PaymentCode     string
	Flags           models.CaseFlags
}

// Bound reports whether a counteragent identity has been bound.
func (r Result) Bound() bool {
	return r.CounteragentID != uuid.Nil
}

// Classifier runs the three classification phases against one run's frozen
// reference snapshot and accumulates the missing-counteragent aggregate.
type Classifier struct {
	snapshot *refdata.Snapshot
	missing  *MissingCounteragents
	logger   logging.Logger
}

// New creates a Classifier for one batch run.
func New(snapshot *refdata.Snapshot, logger logging.Logger) *Classifier {
	return &Classifier{
		snapshot: snapshot,
		missing:  NewMissingCounteragents(),
		logger:   logger,
	}
}

// Missing returns the missing-counteragent aggregate accumulated so far.
func (c *Classifier) Missing() *MissingCounteragents {
	return c.missing
}

// Classify runs phases 1-3 over one entry and returns the classification
// result. Classification of one record never depends on another's outcome.
func (c *Classifier) Classify(tx *models.RawTransaction) Result {
	identity := ExtractIdentity(tx)
	result := c.identifyCounteragent(identity, tx.Key(), Result{})
	result = c.matchPayment(tx.Narrative, result)
	result = c.applyParsingRules(tx, result)
	return result
}

// identifyCounteragent is phase 1. Exactly one of cases 1-3 fires. An
// identity bound here is immutable: later phases may only conflict with it,
// never replace it.
func (c *Classifier) identifyCounteragent(identity Identity, key models.RecordKey, prior Result) Result {
	result := prior

	if identity.Inn.IsBlank() {
		result.Flags.InnBlank = true
		return result
	}

	counteragent, ok := c.snapshot.Counteragents[identity.Inn]
	if !ok {
		result.Flags.InnNotFound = true
		c.missing.Add(identity.Inn, key)
		return result
	}

	result.Flags.InnMatched = true
	result.CounteragentID = counteragent.ID
	return result
}

// matchPayment is phase 2. A payment code extracted from the narrative
// resolves against the payment directory. The payment's counteragent must
// agree with an already-bound identity or case 5 fires; its accounting
// dimensions only fill slots no higher-priority source has set.
func (c *Classifier) matchPayment(narrative string, prior Result) Result {
	result := prior

	code := textutils.ExtractPaymentCode(narrative)
	if code == "" {
		return result
	}

	payment, ok := c.snapshot.Payments[code]
	if !ok {
		c.logger.Debug("Payment code not registered",
			logging.F(logging.FieldPaymentCode, code))
		return result
	}

	result.PaymentCode = payment.Code

	if result.Bound() && payment.CounteragentID != uuid.Nil && payment.CounteragentID != result.CounteragentID {
		// Phase-1 identity wins; the conflict is recorded, not raised.
		result.Flags.PaymentConflict = true
	} else {
		if !result.Bound() {
			result.CounteragentID = payment.CounteragentID
		}
		result.Flags.PaymentMatched = true
	}

	// Dimension fields fill unset slots even when the counteragent
	// conflicted.
	if result.ProjectID == uuid.Nil {
		result.ProjectID = payment.ProjectID
	}
	if result.FinancialCodeID == uuid.Nil {
		result.FinancialCodeID = payment.FinancialCodeID
	}
	if result.CurrencyID == uuid.Nil {
		result.CurrencyID = payment.CurrencyID
	}

	return result
}

// applyParsingRules is phase 3, the highest-priority source. The first rule
// whose condition matches is applied; rules are authoritative on parameters
// and overwrite whatever phase 2 set. A counteragent suggested by the rule
// is discarded with case 7 when it disagrees with the bound identity.
func (c *Classifier) applyParsingRules(tx *models.RawTransaction, prior Result) Result {
	result := prior

	rule, ok := c.firstMatchingRule(tx)
	if !ok {
		return result
	}

	suggested := rule.CounteragentID
	var referenced *models.PaymentRecord
	if code := strings.TrimSpace(rule.PaymentCode); code != "" {
		if payment, found := c.snapshot.Payments[code]; found {
			referenced = &payment
			if suggested == uuid.Nil {
				suggested = payment.CounteragentID
			}
		}
	}

	conflict := false
	if suggested != uuid.Nil {
		if !result.Bound() {
			result.CounteragentID = suggested
		} else if result.CounteragentID != suggested {
			conflict = true
		}
	}

	// Before phase 3 the only source of dimension values is the matched
	// payment, so any overwritten non-zero slot was payment-set.
	ruleProject := uuid.Nil
	ruleFinancialCode := rule.FinancialCodeID
	ruleCurrency := rule.CurrencyID
	if referenced != nil {
		ruleProject = referenced.ProjectID
		if ruleFinancialCode == uuid.Nil {
			ruleFinancialCode = referenced.FinancialCodeID
		}
		if ruleCurrency == uuid.Nil {
			ruleCurrency = referenced.CurrencyID
		}
	}

	overrode := false
	overwrite := func(slot *uuid.UUID, value uuid.UUID) {
		if value == uuid.Nil {
			return
		}
		if *slot != uuid.Nil && *slot != value {
			overrode = true
		}
		*slot = value
	}
	overwrite(&result.ProjectID, ruleProject)
	overwrite(&result.FinancialCodeID, ruleFinancialCode)
	overwrite(&result.CurrencyID, ruleCurrency)

	if conflict {
		result.Flags.RuleConflict = true
	} else {
		result.Flags.RuleMatched = true
		if result.Flags.PaymentMatched && overrode {
			result.Flags.RuleOverride = true
		}
	}

	return result
}

// firstMatchingRule scans the ordered rule list; a rule matches when its
// condition equals the trimmed value of the field named by its column.
func (c *Classifier) firstMatchingRule(tx *models.RawTransaction) (models.ParsingRule, bool) {
	for _, rule := range c.snapshot.Rules {
		value, ok := tx.FieldByColumn(rule.Column)
		if !ok {
			continue
		}
		if strings.TrimSpace(value) == strings.TrimSpace(rule.Condition) {
			return rule, true
		}
	}
	return models.ParsingRule{}, false
}
