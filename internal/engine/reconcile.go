package engine

// reconcile runs the companionship pass. It executes once, after the full
// allocation pass, and examines only companion-species animals (a single
// catalog entry in practice).
//
// For a placed companion-species animal with winning adopter W, two
// conditions are re-checked:
//
//	(a) W's inventory contains all of the animal's favorite toys, as a set
//	    (same rule used to allocate it, re-checked here for robustness);
//	(b) W holds at least one other animal, i.e. W's post-allocation total
//	    (which already includes this animal) is >= 2.
//
// If either fails, the placement is revoked to the shelter and W's total is
// rolled back by one. The quota-limited count is unaffected: the companion
// species is never the quota-limited species.
//
// The companionship total is deliberately read AFTER the whole allocation
// pass, not at the moment the animal was tentatively placed. Animals
// processed later in the order therefore still count toward companionship.
//
// Reconciliation never promotes an animal from the shelter and never
// re-opens any other animal's decision.
func (a *allocation) reconcile() {
	for _, name := range a.order {
		animal, _ := a.cat.Lookup(name)
		if !a.cat.NeedsCompanion(animal.Species) {
			continue
		}

		dest := a.placements[name]
		if dest == DestShelter {
			continue
		}

		winner := a.stateFor(dest)
		if !containsAll(animal.FavoriteToys, a.inventoryFor(dest)) {
			winner.Release()
			a.record(name, DestShelter, ReasonRevokedToys)
			continue
		}
		if winner.Total() < 2 {
			winner.Release()
			a.record(name, DestShelter, ReasonRevokedAlone)
		}
	}
}
