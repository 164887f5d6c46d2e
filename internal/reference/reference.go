// Package reference extracts structured reference numbers and counterparty
// names from free-text transaction narrations.
package reference

import "regexp"

// Kind is the transaction subtype implied by a reference pattern.
type Kind string

const (
	KindNEFT     Kind = "NEFT"
	KindIMPS     Kind = "IMPS"
	KindUPI      Kind = "UPI"
	KindCheque   Kind = "CHEQUE"
	KindInternal Kind = "INTERNAL"
	KindNone     Kind = ""
)

// Reference is a structured reference pulled from a narration. Number is
// empty when no pattern matched; downstream matching only considers
// non-empty numbers.
type Reference struct {
	Number string
	Kind   Kind
}

// rules are tried in order; the first match wins. More specific P2A forms
// precede the bare ones so the channel prefix is not captured as the number.
var rules = []struct {
	kind Kind
	re   *regexp.Regexp
}{
	{KindNEFT, regexp.MustCompile(`NEFT/([A-Z0-9]+)`)},
	{KindIMPS, regexp.MustCompile(`IMPS/P2A/(\d+)`)},
	{KindIMPS, regexp.MustCompile(`IMPS/(\d+)`)},
	{KindUPI, regexp.MustCompile(`UPI/P2A/(\d+)`)},
	{KindUPI, regexp.MustCompile(`UPI/(\d+)`)},
	{KindCheque, regexp.MustCompile(`BRN-CLG-CHQ/(\d+)`)},
	{KindCheque, regexp.MustCompile(`CLG/(\d+)`)},
	{KindInternal, regexp.MustCompile(`AXOIC(\d+)`)},
}

// Extract applies the pattern rules to a narration.
func Extract(narration string) Reference {
	if narration == "" {
		return Reference{}
	}
	for _, rule := range rules {
		if m := rule.re.FindStringSubmatch(narration); m != nil {
			return Reference{Number: m[1], Kind: rule.kind}
		}
	}
	return Reference{}
}
