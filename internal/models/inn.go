// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
)

// Inn is a normalized counterparty tax identification number.
// Lookups against the counteragent directory always use the normalized form:
// ten-digit numeric values are left-padded with a zero to eleven digits.
type Inn string

// ParseInn validates and normalizes a raw INN value. Blank input yields a
// blank Inn without error. Non-digit input is rejected, which makes this the
// right entry point for reference data where a malformed INN is a data error.
func ParseInn(raw string) (Inn, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}
	if !isDigits(s) {
		return "", fmt.Errorf("inn %q contains non-digit characters", raw)
	}
	return Inn(padInn(s)), nil
}

// NormalizeInn normalizes a raw INN value without rejecting malformed input.
// Statement feeds occasionally carry junk in the INN fields; a junk value
// simply never matches the counteragent directory, it is not an error.
func NormalizeInn(raw string) Inn {
	s := strings.TrimSpace(raw)
	if s == "" || !isDigits(s) {
		return Inn(s)
	}
	return Inn(padInn(s))
}

// IsBlank reports whether the INN is empty.
func (i Inn) IsBlank() bool {
	return i == ""
}

func (i Inn) String() string {
	return string(i)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func padInn(s string) string {
	if len(s) == 10 {
		return "0" + s
	}
	return s
}
