package models

import "strings"

// CaseFlags are the eight boolean classification outcomes recorded on every
// processed statement entry. The phase ordering of the classifier guarantees
// the flag invariants (exactly one of cases 1-3, 4/5 and 6/7 mutually
// exclusive, 8 only together with 4 and 6); the flags themselves carry no
// validation.
type CaseFlags struct {
	InnMatched      bool `csv:"Case1" yaml:"case1"` // counteragent resolved by INN
	InnBlank        bool `csv:"Case2" yaml:"case2"` // counterparty INN missing from the entry
	InnNotFound     bool `csv:"Case3" yaml:"case3"` // INN present but absent from the directory
	PaymentMatched  bool `csv:"Case4" yaml:"case4"` // payment code resolved, no conflict
	PaymentConflict bool `csv:"Case5" yaml:"case5"` // payment counteragent disagrees with bound identity
	RuleMatched     bool `csv:"Case6" yaml:"case6"` // parsing rule applied
	RuleConflict    bool `csv:"Case7" yaml:"case7"` // rule counteragent disagrees with bound identity
	RuleOverride    bool `csv:"Case8" yaml:"case8"` // rule overwrote a dimension the payment had set
}

// Explanation labels, fixed so downstream audit views stay grep-able.
var caseLabels = []struct {
	set   func(CaseFlags) bool
	label string
}{
	{func(f CaseFlags) bool { return f.InnMatched }, "case 1: counteragent matched by INN"},
	{func(f CaseFlags) bool { return f.InnBlank }, "case 2: counterparty INN is blank"},
	{func(f CaseFlags) bool { return f.InnNotFound }, "case 3: no counteragent found for INN"},
	{func(f CaseFlags) bool { return f.PaymentMatched }, "case 4: payment matched from narrative"},
	{func(f CaseFlags) bool { return f.PaymentConflict }, "case 5: payment counteragent conflicts with bound identity"},
	{func(f CaseFlags) bool { return f.RuleMatched }, "case 6: parsing rule applied"},
	{func(f CaseFlags) bool { return f.RuleConflict }, "case 7: parsing rule counteragent discarded"},
	{func(f CaseFlags) bool { return f.RuleOverride }, "case 8: parsing rule overrode payment parameters"},
}

// Explanation renders the raised flags as a newline-joined, fixed-label
// string for audit display. It is a pure mapping and performs no validation.
func (f CaseFlags) Explanation() string {
	var lines []string
	for _, c := range caseLabels {
		if c.set(f) {
			lines = append(lines, c.label)
		}
	}
	return strings.Join(lines, "\n")
}

// CaseCounts aggregates how often each case fired across a batch.
type CaseCounts struct {
	Case1 int `yaml:"case1" json:"case1"`
	Case2 int `yaml:"case2" json:"case2"`
	Case3 int `yaml:"case3" json:"case3"`
	Case4 int `yaml:"case4" json:"case4"`
	Case5 int `yaml:"case5" json:"case5"`
	Case6 int `yaml:"case6" json:"case6"`
	Case7 int `yaml:"case7" json:"case7"`
	Case8 int `yaml:"case8" json:"case8"`
}

// Add accumulates one record's flags into the counts.
func (c *CaseCounts) Add(f CaseFlags) {
	if f.InnMatched {
		c.Case1++
	}
	if f.InnBlank {
		c.Case2++
	}
	if f.InnNotFound {
		c.Case3++
	}
	if f.PaymentMatched {
		c.Case4++
	}
	if f.PaymentConflict {
		c.Case5++
	}
	if f.RuleMatched {
		c.Case6++
	}
	if f.RuleConflict {
		c.Case7++
	}
	if f.RuleOverride {
		c.Case8++
	}
}
