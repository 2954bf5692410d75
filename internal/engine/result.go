package engine

import (
	"fmt"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Destination is the final outcome for one animal.
type Destination string

const (
	// DestShelter is the unplaced outcome, used for ties and for quota or
	// companionship failures.
	DestShelter Destination = "abrigo"

	DestAdopter1 Destination = "pessoa 1"
	DestAdopter2 Destination = "pessoa 2"
)

// Reason explains why a decision was made. Carried in the decision trace
// for diagnostics and verbose CLI output; it never affects placement.
type Reason string

const (
	// ReasonAdopted: exactly one adopter eligible with quota available.
	ReasonAdopted Reason = "adopted"

	// ReasonTie: both adopters eligible; the shelter always wins a tie.
	ReasonTie Reason = "tie"

	// ReasonNoMatch: neither adopter eligible.
	ReasonNoMatch Reason = "no_match"

	// ReasonQuotaTotal: the sole eligible adopter already holds the maximum
	// number of animals.
	ReasonQuotaTotal Reason = "quota_total"

	// ReasonQuotaSpecies: the sole eligible adopter already holds the
	// maximum of the quota-limited species.
	ReasonQuotaSpecies Reason = "quota_species"

	// ReasonRevokedToys: reconciliation revoked a companion-species
	// placement because the winning inventory lacked a favorite toy.
	ReasonRevokedToys Reason = "revoked_toys"

	// ReasonRevokedAlone: reconciliation revoked a companion-species
	// placement because the adopter held no other animal.
	ReasonRevokedAlone Reason = "revoked_alone"
)

// Decision is one entry in the decision trace: what happened to one animal
// and why. The allocation pass appends one Decision per animal in processing
// order; reconciliation appends at most one revocation entry.
type Decision struct {
	Animal      string      `json:"animal"`
	Destination Destination `json:"destination"`
	Reason      Reason      `json:"reason"`
}

// Result is a successful engine run.
type Result struct {
	// Lines holds the rendered "<animal> - <destino>" strings, sorted by
	// animal name ascending.
	Lines []string `json:"lines"`

	// Placements maps each processed animal to its final destination.
	Placements map[string]Destination `json:"placements"`

	// Trace records every decision in the order it was made.
	Trace []Decision `json:"trace"`
}

// ptCollator orders animal names for output. Portuguese collation matches
// plain byte order for the ASCII default catalog but keeps accented names
// sorted sensibly under config overrides.
var ptCollator = collate.New(language.Portuguese)

// assembleLines renders the placement map as sorted output lines.
// names carries the processing order; sorting is by name ascending.
func assembleLines(names []string, placements map[string]Destination) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	ptCollator.SortStrings(sorted)

	lines := make([]string, 0, len(sorted))
	for _, name := range sorted {
		lines = append(lines, fmt.Sprintf("%s - %s", name, placements[name]))
	}
	return lines
}
