// Package store provides the file-backed stores behind the consolidation
// pipeline: YAML reference directories and CSV transaction stores.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/iceerpgeorgia/ice-erp-sub000/internal/models"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/procerror"
)

// ReferenceStore reads the bookkeeping reference directories from YAML
// files. Unlike transaction data, a missing or malformed reference file is
// an error: the run must abort rather than classify against partial data.
type ReferenceStore struct {
	CounteragentsFile string
	PaymentsFile      string
	RulesFile         string
	CurrenciesFile    string
	RatesFile         string
}

// NewReferenceStore creates a ReferenceStore with the conventional file
// names under dir.
func NewReferenceStore(dir string) *ReferenceStore {
	return &ReferenceStore{
		CounteragentsFile: filepath.Join(dir, "counteragents.yaml"),
		PaymentsFile:      filepath.Join(dir, "payments.yaml"),
		RulesFile:         filepath.Join(dir, "parsing_rules.yaml"),
		CurrenciesFile:    filepath.Join(dir, "currencies.yaml"),
		RatesFile:         filepath.Join(dir, "exchange_rates.yaml"),
	}
}

// LoadCounteragents loads the counteragent directory.
func (s *ReferenceStore) LoadCounteragents() ([]models.Counteragent, error) {
	var counteragents []models.Counteragent
	if err := readYAML(s.CounteragentsFile, &counteragents); err != nil {
		return nil, err
	}
	return counteragents, nil
}

// LoadPayments loads the payment directory.
func (s *ReferenceStore) LoadPayments() ([]models.PaymentRecord, error) {
	var payments []models.PaymentRecord
	if err := readYAML(s.PaymentsFile, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// LoadParsingRules loads the ordered parsing-rule list. File order is
// significant and preserved.
func (s *ReferenceStore) LoadParsingRules() ([]models.ParsingRule, error) {
	var rules []models.ParsingRule
	if err := readYAML(s.RulesFile, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// LoadCurrencies loads the currency dimension directory.
func (s *ReferenceStore) LoadCurrencies() ([]models.Currency, error) {
	var currencies []models.Currency
	if err := readYAML(s.CurrenciesFile, &currencies); err != nil {
		return nil, err
	}
	return currencies, nil
}

// LoadExchangeRates loads the exchange-rate directory.
func (s *ReferenceStore) LoadExchangeRates() ([]models.ExchangeRate, error) {
	var rates []models.ExchangeRate
	if err := readYAML(s.RatesFile, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &procerror.StoreError{Store: "reference", Op: "read " + filepath.Base(path), Err: err}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return &procerror.StoreError{
			Store: "reference",
			Op:    "parse " + filepath.Base(path),
			Err:   fmt.Errorf("%w", err),
		}
	}
	return nil
}
