// Package engine implements the abrigo adoption decision engine.
//
// The engine decides, for the shelter's animal catalog and two prospective
// adopters, which animal goes to which adopter (or stays at the shelter)
// given each adopter's toy inventory and a processing order for the animals.
//
// ARCHITECTURE:
//
// Strict four-stage pipeline, fully synchronous:
//
//  1. Input validation - tokenize the three comma-separated inputs and
//     reject malformed toy or animal lists before any decision logic runs.
//  2. Allocation pass - walk animals in the given order; per animal, test
//     eligibility for both adopters, apply the tie-break and quota rules,
//     and update per-adopter running state.
//  3. Companionship reconciliation - a second pass limited to the companion
//     species, able to revoke its placement (never to promote).
//  4. Result assembly - render "<animal> - <destino>" lines sorted by
//     animal name under Portuguese collation.
//
// Data flows strictly forward. Adopter inventories are static for the whole
// run; the only mutable state is the two local AdopterState records, so
// decisions depend solely on the inputs and the processing order.
//
// DETERMINISM:
//
// The engine is a pure function of its inputs. No clocks, no randomness,
// no I/O, no globals. Identical inputs always produce identical output,
// and distinct invocations share no state, so concurrent callers are safe.
//
// Validation failures short-circuit the pipeline: the caller gets exactly
// one error kind (invalid toy or invalid animal) and never a partial
// placement. Internal faults are normalized to the invalid-toy kind at the
// pipeline boundary rather than propagated raw.
package engine
