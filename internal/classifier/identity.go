// Package classifier implements the hierarchical classification of raw
// statement entries: counteragent identification by INN, payment matching
// from narrative text, and parsing-rule evaluation. Each phase is a pure
// reducer over an immutable Result; no phase mutates the raw record.
package classifier

import (
	"strings"

	"github.com/iceerpgeorgia/ice-erp-sub000/internal/models"
)

// Direction of money movement relative to the statement account.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// Identity is the counterparty identity derived from the raw entry fields.
type Identity struct {
	Direction Direction
	Inn       models.Inn
	Account   string
}

// ExtractIdentity derives the transaction direction and the normalized
// counterparty INN and account number.
//
// An entry with a zero debit amount is incoming, anything else outgoing.
// The counterparty INN is the sender's for incoming and the beneficiary's
// for outgoing entries. The account number prefers the explicit
// correspondent-account field and falls back to the direction-matched
// sender/beneficiary account.
func ExtractIdentity(tx *models.RawTransaction) Identity {
	direction := DirectionOutgoing
	if tx.IsIncoming() {
		direction = DirectionIncoming
	}

	var rawInn, rawAccount string
	if direction == DirectionIncoming {
		rawInn, rawAccount = tx.SenderInn, tx.SenderAccount
	} else {
		rawInn, rawAccount = tx.BeneficiaryInn, tx.BeneficiaryAccount
	}

	account := strings.TrimSpace(tx.CorrespondentAccount)
	if account == "" {
		account = strings.TrimSpace(rawAccount)
	}

	return Identity{
		Direction: direction,
		Inn:       models.NormalizeInn(rawInn),
		Account:   account,
	}
}
