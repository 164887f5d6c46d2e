// Package accounts maps account numbers to display names.
package accounts

// UnknownName is returned for account numbers without a configured name.
const UnknownName = "Unknown"

// Mapping provides in-memory lookup from account number to display name.
// It is built once per consolidation run and never mutated afterwards.
type Mapping struct {
	names map[string]string
}

// NewMapping creates a Mapping from configured number→name pairs.
func NewMapping(names map[string]string) *Mapping {
	copied := make(map[string]string, len(names))
	for number, name := range names {
		copied[number] = name
	}
	return &Mapping{names: copied}
}

// Name returns the display name for an account number, or UnknownName.
func (m *Mapping) Name(accountNumber string) string {
	if name, ok := m.names[accountNumber]; ok {
		return name
	}
	return UnknownName
}

// Known reports whether an account number has a configured name.
func (m *Mapping) Known(accountNumber string) bool {
	_, ok := m.names[accountNumber]
	return ok
}

// Len returns the number of configured accounts.
func (m *Mapping) Len() int {
	return len(m.names)
}
