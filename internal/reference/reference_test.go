package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		narration string
		want      Reference
	}{
		{"neft", "NEFT/AX123456/ACME SUPPLIES-PAYMENT", Reference{Number: "AX123456", Kind: KindNEFT}},
		{"imps p2a", "IMPS/P2A/510912345678/JOHN DOE", Reference{Number: "510912345678", Kind: KindIMPS}},
		{"imps bare", "IMPS/987654321098/REFUND", Reference{Number: "987654321098", Kind: KindIMPS}},
		{"upi p2a", "UPI/P2A/510912345678/JOHN DOE/OKAXIS", Reference{Number: "510912345678", Kind: KindUPI}},
		{"upi bare", "UPI/445511223344/COFFEE", Reference{Number: "445511223344", Kind: KindUPI}},
		{"clg", "CLG/445566 CHEQUE DEPOSIT", Reference{Number: "445566", Kind: KindCheque}},
		{"branch clg", "BRN-CLG-CHQ/778899 PAID TO VENDOR", Reference{Number: "778899", Kind: KindCheque}},
		{"internal", "AXOIC99887 VENDOR SETTLEMENT", Reference{Number: "99887", Kind: KindInternal}},
		{"no match", "CASH DEPOSIT AT BRANCH", Reference{}},
		{"empty", "", Reference{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.narration))
		})
	}
}

func TestExtract_FirstMatchWins(t *testing.T) {
	// NEFT is matched before the UPI fragment later in the narration.
	got := Extract("NEFT/AB999/VIA UPI/123456")
	assert.Equal(t, KindNEFT, got.Kind)
	assert.Equal(t, "AB999", got.Number)
}

func TestParty(t *testing.T) {
	tests := []struct {
		name      string
		narration string
		want      string
	}{
		{"neft credit", "NEFT CR-UTIB0000123-ACME SUPPLIES-INVOICE 42-AX123", "ACME SUPPLIES"},
		{"neft suffix stripped", "NEFT DR-HDFC0000001-GLOBAL TRADERS NETBANK-PAY-X1", "GLOBAL TRADERS"},
		{"imps", "IMPS-510912345678-RAVI KUMAR-UTIB-XXXX1234-RENT", "RAVI KUMAR"},
		{"tpt", "50200087543792-TPT-OFFICE RENT-SHARMA ESTATES", "SHARMA ESTATES"},
		{"pos", "POS 416021XXXXXX9012 AMAZON RETAIL 2025", "AMAZON RETAIL"},
		{"cbdt", "CBDT TAX PAYMENT Q1", "INCOME TAX DEPARTMENT (CBDT)"},
		{"dash prefix fallback", "RTGS OUTWARD-SOMEWHERE", "RTGS OUTWARD"},
		{"no structure", "MISC CHARGE", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Party(tt.narration))
		})
	}
}
