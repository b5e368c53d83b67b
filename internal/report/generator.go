// Package report renders the missing-counteragent report produced by a
// batch run for manual follow-up.
package report

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iceerpgeorgia/ice-erp-sub000/internal/classifier"
)

// MissingCounteragentReport lists the INNs seen on statement entries that
// have no counteragent in the directory, ranked by frequency.
type MissingCounteragentReport struct {
	GeneratedAt time.Time                 `json:"generated_at" yaml:"generated_at"`
	Total       int                       `json:"total" yaml:"total"`
	Entries     []classifier.MissingEntry `json:"entries" yaml:"entries"`
}

// NewMissingCounteragentReport builds a report from ranked entries.
func NewMissingCounteragentReport(entries []classifier.MissingEntry) *MissingCounteragentReport {
	return &MissingCounteragentReport{
		GeneratedAt: time.Now(),
		Total:       len(entries),
		Entries:     entries,
	}
}

// Generator renders reports in the supported formats.
type Generator struct{}

// NewGenerator creates a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the report as "json" or "yaml".
func (g *Generator) Generate(report *MissingCounteragentReport, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return data, nil
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}
