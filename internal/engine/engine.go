package engine

import (
	"fmt"

	"github.com/roach88/abrigo/internal/catalog"
)

// Evaluate runs the full adoption pipeline: validate both adopter
// inventories and the processing order, allocate animals in order, reconcile
// companionship, and assemble the sorted result.
//
// The three raw inputs are comma-separated token lists; whitespace around
// tokens is trimmed and an empty string means an empty list.
//
// On success err is nil and the Result carries the rendered lines, the
// placement map, and the decision trace. On failure the Result is nil and
// err is a *ValidationError carrying exactly one error kind; no partial
// placement is ever returned. Any internal fault is recovered and
// normalized to the invalid-toy kind rather than propagated raw.
func Evaluate(cat *catalog.Catalog, adopter1Raw, adopter2Raw, orderRaw string) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = NewInvalidToyError(fmt.Sprintf("internal fault: %v", r), "")
		}
	}()

	inv1 := Tokenize(adopter1Raw)
	inv2 := Tokenize(adopter2Raw)
	order := Tokenize(orderRaw)

	if err := validateInventory(cat, inv1, "adopter 1"); err != nil {
		return nil, err
	}
	if err := validateInventory(cat, inv2, "adopter 2"); err != nil {
		return nil, err
	}
	if err := validateOrder(cat, order); err != nil {
		return nil, err
	}

	a := newAllocation(cat, inv1, inv2, order)
	a.run()
	a.reconcile()

	return &Result{
		Lines:      assembleLines(order, a.placements),
		Placements: a.placements,
		Trace:      a.trace,
	}, nil
}
