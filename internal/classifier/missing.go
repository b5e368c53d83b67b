package classifier

import (
	"sort"

	"github.com/iceerpgeorgia/ice-erp-sub000/internal/models"
)

// maxSampleKeys caps how many record keys are kept per unmatched INN.
const maxSampleKeys = 3

// MissingEntry aggregates the occurrences of one unmatched INN.
type MissingEntry struct {
	Inn        models.Inn `json:"inn" yaml:"inn"`
	Count      int        `json:"count" yaml:"count"`
	SampleKeys []string   `json:"sample_keys" yaml:"sample_keys"`
}

// MissingCounteragents collects the INNs that were present on statement
// entries but absent from the counteragent directory. It is a reporting
// side effect of phase 1, not an error.
type MissingCounteragents struct {
	entries map[models.Inn]*MissingEntry
}

// NewMissingCounteragents creates an empty aggregate.
func NewMissingCounteragents() *MissingCounteragents {
	return &MissingCounteragents{entries: make(map[models.Inn]*MissingEntry)}
}

// Add records one unmatched occurrence. Up to maxSampleKeys record keys per
// INN are kept for manual follow-up.
func (m *MissingCounteragents) Add(inn models.Inn, key models.RecordKey) {
	entry, ok := m.entries[inn]
	if !ok {
		entry = &MissingEntry{Inn: inn}
		m.entries[inn] = entry
	}
	entry.Count++
	if len(entry.SampleKeys) < maxSampleKeys {
		entry.SampleKeys = append(entry.SampleKeys, key.String())
	}
}

// Len returns the number of distinct unmatched INNs.
func (m *MissingCounteragents) Len() int {
	return len(m.entries)
}

// Ranked returns the entries sorted by descending count; ties break on the
// INN for deterministic output.
func (m *MissingCounteragents) Ranked() []MissingEntry {
	ranked := make([]MissingEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Inn < ranked[j].Inn
	})
	return ranked
}

// Top returns the n most frequent entries.
func (m *MissingCounteragents) Top(n int) []MissingEntry {
	ranked := m.Ranked()
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
