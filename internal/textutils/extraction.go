// Package textutils provides text extraction utilities for statement
// narrative fields.
package textutils

import (
	"regexp"
	"strings"
)

// Ordered extraction strategies for payment codes embedded in narrative
// text. The first strategy that produces a token wins.
var (
	paymentIDPattern = regexp.MustCompile(`(?i)payment[ _]?id\s*:\s*([A-Za-z0-9_-]+)`)
	leadingIDPattern = regexp.MustCompile(`(?i)^\s*id\s*:\s*([A-Za-z0-9_-]+)`)
	hashPattern      = regexp.MustCompile(`[#№]\s*([A-Za-z0-9_-]+)`)
	bareCodePattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{5,20}$`)
)

// ExtractPaymentCode pulls a payment code out of a narrative field.
// Strategies, first match wins:
//  1. "payment_id: X" / "payment id: X", case-insensitive
//  2. a leading "id: X"
//  3. the token following "#" or "№"
//  4. the whole trimmed text, when it is a bare 5-20 character code
//
// Returns an empty string when nothing matches.
func ExtractPaymentCode(narrative string) string {
	if matches := paymentIDPattern.FindStringSubmatch(narrative); len(matches) > 1 {
		return matches[1]
	}

	if matches := leadingIDPattern.FindStringSubmatch(narrative); len(matches) > 1 {
		return matches[1]
	}

	if matches := hashPattern.FindStringSubmatch(narrative); len(matches) > 1 {
		return matches[1]
	}

	trimmed := strings.TrimSpace(narrative)
	if bareCodePattern.MatchString(trimmed) {
		return trimmed
	}

	return ""
}
