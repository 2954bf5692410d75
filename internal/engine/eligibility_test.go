package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/abrigo/internal/catalog"
)

func TestIsSubsequence(t *testing.T) {
	tests := []struct {
		name string
		want []string
		have []string
		ok   bool
	}{
		{
			name: "exact match",
			want: []string{"RATO", "BOLA"},
			have: []string{"RATO", "BOLA"},
			ok:   true,
		},
		{
			name: "non-contiguous match",
			want: []string{"RATO", "BOLA"},
			have: []string{"RATO", "LASER", "BOLA"},
			ok:   true,
		},
		{
			name: "order violated",
			want: []string{"RATO", "BOLA"},
			have: []string{"BOLA", "RATO"},
			ok:   false,
		},
		{
			name: "missing element",
			want: []string{"RATO", "BOLA"},
			have: []string{"RATO", "NOVELO"},
			ok:   false,
		},
		{
			name: "empty favorites trivially eligible",
			want: nil,
			have: []string{"RATO"},
			ok:   true,
		},
		{
			name: "empty inventory",
			want: []string{"RATO"},
			have: nil,
			ok:   false,
		},
		{
			name: "both empty",
			want: nil,
			have: nil,
			ok:   true,
		},
		{
			name: "favorites longer than inventory",
			want: []string{"BOLA", "RATO", "LASER"},
			have: []string{"BOLA", "RATO"},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, isSubsequence(tt.want, tt.have))
		})
	}
}

func TestContainsAll(t *testing.T) {
	tests := []struct {
		name string
		want []string
		have []string
		ok   bool
	}{
		{
			name: "order irrelevant",
			want: []string{"SKATE", "RATO"},
			have: []string{"RATO", "BOLA", "SKATE"},
			ok:   true,
		},
		{
			name: "missing one",
			want: []string{"SKATE", "RATO"},
			have: []string{"SKATE"},
			ok:   false,
		},
		{
			name: "empty want",
			want: nil,
			have: nil,
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, containsAll(tt.want, tt.have))
		})
	}
}

// TestEligible_SpeciesRule verifies the companion species uses set
// containment while everyone else needs an ordered subsequence.
func TestEligible_SpeciesRule(t *testing.T) {
	cat := catalog.Default()

	rex, ok := cat.Lookup("Rex")
	require.True(t, ok)
	loco, ok := cat.Lookup("Loco")
	require.True(t, ok)

	// Rex needs RATO before BOLA.
	assert.True(t, eligible(cat, rex, []string{"RATO", "BOLA"}))
	assert.False(t, eligible(cat, rex, []string{"BOLA", "RATO"}))

	// Loco (SKATE, RATO) accepts any order.
	assert.True(t, eligible(cat, loco, []string{"RATO", "SKATE"}))
	assert.True(t, eligible(cat, loco, []string{"SKATE", "BOLA", "RATO"}))
	assert.False(t, eligible(cat, loco, []string{"SKATE"}))
}
