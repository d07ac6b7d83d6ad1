// Package budget computes the derived wedding budget figures: the guest
// count used for planning, spending targets from expected gift income,
// committed vendor totals and tiered venue meal costs.
//
// Every function in this package is pure. Callers load the inputs from
// storage and pass them in; nothing here performs I/O or keeps state.
package budget

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// TargetMode selects how the likely spending target is derived from the
// expected gift income.
type TargetMode string

const (
	// TargetModeMatch spends exactly what the gifts are expected to cover.
	TargetModeMatch TargetMode = "match"
	// TargetModePersonalPocket plans to spend more than the gifts and fund
	// the gap personally.
	TargetModePersonalPocket TargetMode = "personal_pocket"
	// TargetModeProfit plans to spend less than the gifts and keep the rest.
	TargetModeProfit TargetMode = "profit"
)

// VendorStatus is the negotiation stage of a vendor.
type VendorStatus string

const (
	VendorStatusOpen      VendorStatus = "open"
	VendorStatusProposal  VendorStatus = "proposal"
	VendorStatusCommitted VendorStatus = "committed"
)

var targetModeLabels = map[string]TargetMode{
	"match":           TargetModeMatch,
	"personal_pocket": TargetModePersonalPocket,
	"profit":          TargetModeProfit,
	"ניצמד":           TargetModeMatch,
	"כיס אישי":        TargetModePersonalPocket,
	"נרוויח":          TargetModeProfit,
}

var vendorStatusLabels = map[string]VendorStatus{
	"open":      VendorStatusOpen,
	"proposal":  VendorStatusProposal,
	"committed": VendorStatusCommitted,
	"פתוח":      VendorStatusOpen,
	"הצעה":      VendorStatusProposal,
	"התחייב":    VendorStatusCommitted,
}

// normalizeLabel folds a user supplied label into the form used as map key.
// Hebrew labels typed on different keyboards can arrive decomposed, so they
// are composed to NFC before lookup.
func normalizeLabel(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ParseTargetMode resolves an English or Hebrew target mode label.
func ParseTargetMode(s string) (TargetMode, bool) {
	m, ok := targetModeLabels[normalizeLabel(s)]
	return m, ok
}

// ParseVendorStatus resolves an English or Hebrew vendor status label.
func ParseVendorStatus(s string) (VendorStatus, bool) {
	st, ok := vendorStatusLabels[normalizeLabel(s)]
	return st, ok
}

// Valid reports whether m is one of the known target modes.
func (m TargetMode) Valid() bool {
	switch m {
	case TargetModeMatch, TargetModePersonalPocket, TargetModeProfit:
		return true
	}
	return false
}

// Valid reports whether s is one of the known vendor statuses.
func (s VendorStatus) Valid() bool {
	switch s {
	case VendorStatusOpen, VendorStatusProposal, VendorStatusCommitted:
		return true
	}
	return false
}
