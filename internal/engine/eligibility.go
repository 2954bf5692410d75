package engine

import "github.com/roach88/abrigo/internal/catalog"

// eligible reports whether an adopter's inventory satisfies an animal's
// adoption requirement.
//
// Default rule: the animal's favorite toys must occur as a subsequence of
// the inventory (order preserved, not necessarily contiguous).
// Companion-species animals instead require set containment: every favorite
// toy present, order irrelevant.
func eligible(cat *catalog.Catalog, animal catalog.Animal, inventory []string) bool {
	if cat.NeedsCompanion(animal.Species) {
		return containsAll(animal.FavoriteToys, inventory)
	}
	return isSubsequence(animal.FavoriteToys, inventory)
}

// isSubsequence reports whether want occurs as an order-preserving
// subsequence of have. Single forward scan: advance a pointer into want each
// time the current inventory token matches. The empty sequence is trivially
// a subsequence.
func isSubsequence(want, have []string) bool {
	next := 0
	for _, tok := range have {
		if next == len(want) {
			break
		}
		if tok == want[next] {
			next++
		}
	}
	return next == len(want)
}

// containsAll reports whether have contains every element of want,
// as a set. Duplicates in have are harmless; validation has already
// rejected duplicate inventory tokens anyway.
func containsAll(want, have []string) bool {
	set := make(map[string]bool, len(have))
	for _, tok := range have {
		set[tok] = true
	}
	for _, tok := range want {
		if !set[tok] {
			return false
		}
	}
	return true
}
