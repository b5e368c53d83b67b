package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPaymentCode(t *testing.T) {
	tests := []struct {
		name      string
		narrative string
		want      string
	}{
		{"payment_id prefix", "Transfer per contract, payment_id: AB12345", "AB12345"},
		{"payment id with space", "PAYMENT ID: X-900_1 misc text", "X-900_1"},
		{"case insensitive", "Payment_Id:INV2024", "INV2024"},
		{"leading id", "id: 778899 salary for July", "778899"},
		{"id not at start ignored", "paid id: 778899", ""},
		{"hash token", "invoice #A556B utilities", "A556B"},
		{"numero sign token", "оплата № 123456 по договору", "123456"},
		{"bare code", "  INV-2024_77  ", "INV-2024_77"},
		{"bare code too short", "AB12", ""},
		{"bare code too long", "ABCDEFGHIJKLMNOPQRSTU", ""},
		{"bare text with spaces is not a code", "monthly rent payment", ""},
		{"empty narrative", "", ""},
		{"payment_id beats hash", "payment_id: FIRST #SECOND", "FIRST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPaymentCode(tt.narrative))
		})
	}
}
