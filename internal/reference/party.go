package reference

import (
	"regexp"
	"strings"
)

// Narration layouts vary by channel; each pattern captures the
// counterparty segment for one of them.
var (
	neftParty = regexp.MustCompile(`NEFT (?:CR|DR)-[A-Z0-9]+-([^-]+)-`)
	impsParty = regexp.MustCompile(`IMPS-\d+-([^-]+)-[A-Z]{4}-`)
	tptParty  = regexp.MustCompile(`TPT-(?:[^-]*-)?(.+)$`)
	ftParty   = regexp.MustCompile(`FT-\s*-\d+\s*-\s*([^-]+)\s*-`)
	posParty  = regexp.MustCompile(`POS\s+\d+X+\d+\s+(.+?)(?:\s+\d|$)`)
	chqParty  = regexp.MustCompile(`CHQ (?:PAID|DEP)-(?:MICR\s+)?(?:CTS-)?(?:RK-)?(.+)$`)
	achParty  = regexp.MustCompile(`ACH\s+[DC]-\s*([^-]+)-`)

	neftSuffix = regexp.MustCompile(`(?i)\s*(?:NETBANK|MUM|ONLINE)$`)
	posPrefix  = regexp.MustCompile(`(?i)^(?:PAY\*|ME DC SI|WWW\s+)`)
)

// Party extracts a counterparty name from a narration, or "Unknown" when
// no channel layout matches and no dash-delimited prefix exists.
func Party(narration string) string {
	n := strings.TrimSpace(narration)

	if m := neftParty.FindStringSubmatch(n); m != nil {
		return strings.TrimSpace(neftSuffix.ReplaceAllString(m[1], ""))
	}
	if m := impsParty.FindStringSubmatch(n); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := tptParty.FindStringSubmatch(n); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := ftParty.FindStringSubmatch(n); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := posParty.FindStringSubmatch(n); m != nil {
		return strings.TrimSpace(posPrefix.ReplaceAllString(strings.TrimSpace(m[1]), ""))
	}
	if m := chqParty.FindStringSubmatch(n); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := achParty.FindStringSubmatch(n); m != nil {
		return strings.TrimSpace(m[1])
	}
	if strings.Contains(n, "CBDT") {
		return "INCOME TAX DEPARTMENT (CBDT)"
	}

	if parts := strings.Split(n, "-"); len(parts) > 1 {
		if p := strings.TrimSpace(parts[0]); p != "" {
			return p
		}
	}
	return "Unknown"
}
