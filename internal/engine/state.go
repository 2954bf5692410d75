package engine

import "github.com/roach88/abrigo/internal/catalog"

// Per-adopter quota limits.
const (
	// MaxAnimalsPerAdopter caps the total animals one adopter may take home.
	MaxAnimalsPerAdopter = 3

	// MaxQuotaLimitedPerAdopter caps adopted individuals of the
	// quota-limited species per adopter.
	MaxQuotaLimitedPerAdopter = 1
)

// AdopterState tracks one adopter's running totals during the allocation
// pass. One instance exists per adopter per run; instances are local to a
// single engine invocation and never shared.
//
// Companionship needs no separate flag: at decision time it is simply
// Total() >= 2, i.e. at least one other animal besides the one under
// consideration.
type AdopterState struct {
	dest         Destination // which adopter this state belongs to
	total        int         // animals adopted so far
	quotaLimited int         // quota-limited-species animals adopted so far
}

// NewAdopterState creates running state for the adopter identified by dest.
func NewAdopterState(dest Destination) *AdopterState {
	return &AdopterState{dest: dest}
}

// Destination returns the placement destination this state belongs to.
func (s *AdopterState) Destination() Destination {
	return s.dest
}

// Total returns the number of animals adopted so far.
func (s *AdopterState) Total() int {
	return s.total
}

// QuotaLimited returns the number of quota-limited-species animals adopted so far.
func (s *AdopterState) QuotaLimited() int {
	return s.quotaLimited
}

// CanTake reports whether the adopter has quota left for an animal of the
// given species. Checked before every placement; a failed check leaves the
// state unchanged.
func (s *AdopterState) CanTake(cat *catalog.Catalog, species catalog.Species) bool {
	if s.total >= MaxAnimalsPerAdopter {
		return false
	}
	if cat.QuotaLimited(species) && s.quotaLimited >= MaxQuotaLimitedPerAdopter {
		return false
	}
	return true
}

// Take consumes quota for an animal of the given species.
// Callers must check CanTake first.
func (s *AdopterState) Take(cat *catalog.Catalog, species catalog.Species) {
	s.total++
	if cat.QuotaLimited(species) {
		s.quotaLimited++
	}
}

// Release rolls back one placement slot. Used only by reconciliation when a
// companion-species placement is revoked; that species is never the
// quota-limited one, so quotaLimited is untouched.
func (s *AdopterState) Release() {
	s.total--
}
