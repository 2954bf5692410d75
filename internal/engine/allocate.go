package engine

import "github.com/roach88/abrigo/internal/catalog"

// allocation holds the mutable state of one allocation pass.
// Inventories are static for the whole pass; only the adopter states and
// the placement map change as animals are processed.
type allocation struct {
	cat        *catalog.Catalog
	inventory1 []string
	inventory2 []string

	adopter1 *AdopterState
	adopter2 *AdopterState

	order      []string
	placements map[string]Destination
	trace      []Decision
}

// newAllocation prepares a pass over the given processing order.
// Inputs must already be validated.
func newAllocation(cat *catalog.Catalog, inv1, inv2, order []string) *allocation {
	return &allocation{
		cat:        cat,
		inventory1: inv1,
		inventory2: inv2,
		adopter1:   NewAdopterState(DestAdopter1),
		adopter2:   NewAdopterState(DestAdopter2),
		order:      order,
		placements: make(map[string]Destination, len(order)),
		trace:      make([]Decision, 0, len(order)),
	}
}

// run processes animals strictly in the given order. Later animals see the
// adopter state already updated by earlier ones, so the order determines
// which animals consume quota first.
func (a *allocation) run() {
	for _, name := range a.order {
		animal, _ := a.cat.Lookup(name) // validated; always present
		a.place(animal)
	}
}

// place decides one animal's destination and updates running state.
//
// Both adopters are evaluated independently against their full, static
// inventories. A tie always favors the shelter: simultaneous eligibility
// never assigns the animal to either adopter, and consumes no quota.
func (a *allocation) place(animal catalog.Animal) {
	ok1 := eligible(a.cat, animal, a.inventory1)
	ok2 := eligible(a.cat, animal, a.inventory2)

	switch {
	case ok1 && ok2:
		a.record(animal.Name, DestShelter, ReasonTie)
	case !ok1 && !ok2:
		a.record(animal.Name, DestShelter, ReasonNoMatch)
	default:
		candidate := a.adopter1
		if ok2 {
			candidate = a.adopter2
		}
		a.placeWith(animal, candidate)
	}
}

// placeWith applies the quota rules for the single eligible adopter.
// A quota failure leaves the candidate's state unchanged.
func (a *allocation) placeWith(animal catalog.Animal, candidate *AdopterState) {
	switch {
	case candidate.Total() >= MaxAnimalsPerAdopter:
		a.record(animal.Name, DestShelter, ReasonQuotaTotal)
	case a.cat.QuotaLimited(animal.Species) && candidate.QuotaLimited() >= MaxQuotaLimitedPerAdopter:
		a.record(animal.Name, DestShelter, ReasonQuotaSpecies)
	default:
		candidate.Take(a.cat, animal.Species)
		a.record(animal.Name, candidate.Destination(), ReasonAdopted)
	}
}

// record writes the placement entry and appends to the decision trace.
func (a *allocation) record(name string, dest Destination, reason Reason) {
	a.placements[name] = dest
	a.trace = append(a.trace, Decision{Animal: name, Destination: dest, Reason: reason})
}

// inventoryFor returns the static inventory belonging to a destination.
func (a *allocation) inventoryFor(dest Destination) []string {
	if dest == DestAdopter2 {
		return a.inventory2
	}
	return a.inventory1
}

// stateFor returns the adopter state belonging to a destination.
func (a *allocation) stateFor(dest Destination) *AdopterState {
	if dest == DestAdopter2 {
		return a.adopter2
	}
	return a.adopter1
}
