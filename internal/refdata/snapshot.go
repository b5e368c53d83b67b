// Package refdata loads the bookkeeping reference data into immutable
// in-memory maps for one consolidation run. The maps are built once and
// frozen: edits made to the directories while a batch runs are only
// observed by the next run.
package refdata

import (
	"strings"

	"github.com/google/uuid"

	"github.com/iceerpgeorgia/ice-erp-sub000/internal/currency"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/logging"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/models"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/procerror"
)

// Source is the read side of the reference-data directories.
type Source interface {
	LoadCounteragents() ([]models.Counteragent, error)
	LoadPayments() ([]models.PaymentRecord, error)
	LoadParsingRules() ([]models.ParsingRule, error)
	LoadCurrencies() ([]models.Currency, error)
	LoadExchangeRates() ([]models.ExchangeRate, error)
}

// Snapshot holds one run's frozen reference data.
type Snapshot struct {
	Counteragents map[models.Inn]models.Counteragent
	Payments      map[string]models.PaymentRecord
	Rules         []models.ParsingRule
	Currencies    map[uuid.UUID]string
	Rates         *currency.RateTable
}

// Load builds a Snapshot from the source. Any failure is fatal for the run:
// classification must not start against partial reference data.
func Load(src Source, logger logging.Logger) (*Snapshot, error) {
	counteragents, err := src.LoadCounteragents()
	if err != nil {
		return nil, &procerror.LoadError{Source: "counteragent", Err: err}
	}

	payments, err := src.LoadPayments()
	if err != nil {
		return nil, &procerror.LoadError{Source: "payment", Err: err}
	}

	rules, err := src.LoadParsingRules()
	if err != nil {
		return nil, &procerror.LoadError{Source: "parsing-rule", Err: err}
	}

	currencies, err := src.LoadCurrencies()
	if err != nil {
		return nil, &procerror.LoadError{Source: "currency", Err: err}
	}

	rates, err := src.LoadExchangeRates()
	if err != nil {
		return nil, &procerror.LoadError{Source: "exchange-rate", Err: err}
	}

	snapshot := &Snapshot{
		Counteragents: make(map[models.Inn]models.Counteragent, len(counteragents)),
		Payments:      make(map[string]models.PaymentRecord, len(payments)),
		Rules:         rules,
		Currencies:    make(map[uuid.UUID]string, len(currencies)),
		Rates:         currency.NewRateTable(),
	}

	for _, ca := range counteragents {
		inn, err := models.ParseInn(ca.Inn.String())
		if err != nil {
			return nil, &procerror.LoadError{Source: "counteragent", Err: err}
		}
		if inn.IsBlank() {
			continue
		}
		if _, dup := snapshot.Counteragents[inn]; dup {
			logger.Warn("Duplicate counteragent INN in directory, keeping first",
				logging.F(logging.FieldInn, inn.String()))
			continue
		}
		ca.Inn = inn
		snapshot.Counteragents[inn] = ca
	}

	for _, p := range payments {
		code := strings.TrimSpace(p.Code)
		if code == "" {
			continue
		}
		p.Code = code
		snapshot.Payments[code] = p
	}

	for _, c := range currencies {
		snapshot.Currencies[c.ID] = currency.NormalizeCode(c.Code)
	}

	for _, r := range rates {
		snapshot.Rates.Add(r.Date, r.Currency, r.Rate)
	}

	logger.Info("Reference data loaded",
		logging.F("counteragents", len(snapshot.Counteragents)),
		logging.F("payments", len(snapshot.Payments)),
		logging.F("parsing_rules", len(snapshot.Rules)),
		logging.F("currencies", len(snapshot.Currencies)),
		logging.F("rate_dates", snapshot.Rates.Len()))

	return snapshot, nil
}

// CurrencyCode resolves a currency dimension UUID to its ISO code, or ""
// when the dimension is unset or unknown.
func (s *Snapshot) CurrencyCode(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return s.Currencies[id]
}

// CounteragentName resolves a counteragent UUID to its display name, or ""
// when unknown. The map is small enough that a linear scan is fine here.
func (s *Snapshot) CounteragentName(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	for _, ca := range s.Counteragents {
		if ca.ID == id {
			return ca.Name
		}
	}
	return ""
}
