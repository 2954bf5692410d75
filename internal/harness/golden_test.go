package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Golden files pin the full result snapshot (lines, placements, and the
// decision trace) for representative scenarios. Regenerate with:
//
//	go test ./internal/harness -update

func TestRunWithGolden_SingleMatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "rex-and-fofo",
		Description: "Rex matches adopter 1; Fofo matches nobody.",
		Adopter1:    "RATO,BOLA",
		Adopter2:    "RATO,NOVELO",
		Order:       "Rex,Fofo",
		Expect: ExpectClause{
			Placements: map[string]string{
				"Rex":  "pessoa 1",
				"Fofo": "abrigo",
			},
		},
	}

	require.NoError(t, RunWithGolden(t, scenario))
}

func TestRunWithGolden_CompanionKept(t *testing.T) {
	scenario := &Scenario{
		Name:        "loco-with-companion",
		Description: "Loco keeps its placement because Rex lives there too.",
		Adopter1:    "SKATE,RATO,BOLA",
		Adopter2:    "LASER",
		Order:       "Rex,Loco",
		Expect: ExpectClause{
			Placements: map[string]string{
				"Rex":  "pessoa 1",
				"Loco": "pessoa 1",
			},
		},
	}

	require.NoError(t, RunWithGolden(t, scenario))
}

func TestRunWithGolden_CompanionRevoked(t *testing.T) {
	scenario := &Scenario{
		Name:        "loco-alone-revoked",
		Description: "Loco is revoked because the adopter holds nothing else.",
		Adopter1:    "SKATE,RATO",
		Adopter2:    "LASER",
		Order:       "Loco",
		Expect: ExpectClause{
			Placements: map[string]string{"Loco": "abrigo"},
		},
	}

	require.NoError(t, RunWithGolden(t, scenario))
}

func TestRunWithGolden_ValidationError(t *testing.T) {
	scenario := &Scenario{
		Name:        "duplicate-toy",
		Description: "Duplicate toy tokens are rejected before allocation.",
		Adopter1:    "RATO,RATO",
		Adopter2:    "",
		Order:       "Rex",
		Expect:      ExpectClause{Error: "Brinquedo inválido"},
	}

	require.NoError(t, RunWithGolden(t, scenario))
}
