// Package catalog defines the static adoption configuration: the animals
// available for adoption, the set of valid toy tokens, and the species-level
// rules the decision engine enforces.
//
// The catalog is read-only configuration. A compiled-in default covers the
// shelter's current residents; Load can build a catalog from a CUE config
// file instead, without changing engine behavior.
package catalog

import (
	"fmt"
	"sort"
)

// Species enumerates the animal species the shelter houses.
type Species string

const (
	SpeciesCao    Species = "cão"
	SpeciesGato   Species = "gato"
	SpeciesJabuti Species = "jabuti"
)

// Animal is one immutable catalog entry.
//
// FavoriteToys is order-significant: for most animals the adopter's inventory
// must contain the favorites as an ordered subsequence. Animals of the
// companion species only require set containment.
type Animal struct {
	Name         string
	Species      Species
	FavoriteToys []string
}

// Catalog is the full static configuration consumed by the engine.
//
// QuotaLimitedSpecies is capped at one adopted individual per adopter.
// CompanionSpecies animals match toys as a set and additionally require the
// adopter to hold at least one other animal. The two species are always
// distinct; Validate enforces this.
type Catalog struct {
	animals []Animal
	byName  map[string]Animal
	toys    map[string]struct{}

	quotaLimited Species
	companion    Species
}

// New builds a catalog from explicit configuration. Returns an error if the
// configuration is internally inconsistent (see Validate).
func New(animals []Animal, toys []string, quotaLimited, companion Species) (*Catalog, error) {
	c := &Catalog{
		animals:      make([]Animal, len(animals)),
		byName:       make(map[string]Animal, len(animals)),
		toys:         make(map[string]struct{}, len(toys)),
		quotaLimited: quotaLimited,
		companion:    companion,
	}
	copy(c.animals, animals)
	for _, a := range animals {
		c.byName[a.Name] = a
	}
	for _, t := range toys {
		c.toys[t] = struct{}{}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns the compiled-in shelter catalog: seven animals, six valid
// toys, gatos quota-limited, jabutis requiring companionship.
func Default() *Catalog {
	c, err := New(
		[]Animal{
			{Name: "Rex", Species: SpeciesCao, FavoriteToys: []string{"RATO", "BOLA"}},
			{Name: "Mimi", Species: SpeciesGato, FavoriteToys: []string{"BOLA", "LASER"}},
			{Name: "Fofo", Species: SpeciesCao, FavoriteToys: []string{"BOLA", "RATO", "LASER"}},
			{Name: "Zero", Species: SpeciesGato, FavoriteToys: []string{"RATO", "BOLA"}},
			{Name: "Bola", Species: SpeciesCao, FavoriteToys: []string{"CAIXA", "NOVELO"}},
			{Name: "Bebe", Species: SpeciesCao, FavoriteToys: []string{"LASER", "RATO", "BOLA"}},
			{Name: "Loco", Species: SpeciesJabuti, FavoriteToys: []string{"SKATE", "RATO"}},
		},
		[]string{"RATO", "BOLA", "LASER", "CAIXA", "NOVELO", "SKATE"},
		SpeciesGato,
		SpeciesJabuti,
	)
	if err != nil {
		// The default catalog is a compile-time constant; it cannot be invalid.
		panic(fmt.Sprintf("default catalog invalid: %v", err))
	}
	return c
}

// Validate checks internal consistency:
//   - at least one animal and one toy
//   - no duplicate animal names
//   - every favorite toy is a member of the toy set
//   - quota-limited and companion species are distinct
func (c *Catalog) Validate() error {
	if len(c.animals) == 0 {
		return &ConfigError{Field: "animal", Message: "at least one animal is required"}
	}
	if len(c.toys) == 0 {
		return &ConfigError{Field: "toys", Message: "at least one toy is required"}
	}
	if c.quotaLimited != "" && c.quotaLimited == c.companion {
		return &ConfigError{
			Field:   "quota_limited_species",
			Message: fmt.Sprintf("quota-limited species %q must differ from companion species", c.quotaLimited),
		}
	}
	seen := make(map[string]bool, len(c.animals))
	for _, a := range c.animals {
		if a.Name == "" {
			return &ConfigError{Field: "animal", Message: "animal name must not be empty"}
		}
		if seen[a.Name] {
			return &ConfigError{
				Field:   "animal." + a.Name,
				Message: fmt.Sprintf("duplicate animal name %q", a.Name),
			}
		}
		seen[a.Name] = true
		for _, t := range a.FavoriteToys {
			if _, ok := c.toys[t]; !ok {
				return &ConfigError{
					Field:   "animal." + a.Name + ".toys",
					Message: fmt.Sprintf("favorite toy %q is not in the toy set", t),
				}
			}
		}
	}
	return nil
}

// Lookup returns the catalog entry for name.
func (c *Catalog) Lookup(name string) (Animal, bool) {
	a, ok := c.byName[name]
	return a, ok
}

// ValidToy reports whether token is a member of the toy set.
func (c *Catalog) ValidToy(token string) bool {
	_, ok := c.toys[token]
	return ok
}

// Animals returns the catalog entries in declaration order.
// The returned slice is a copy; callers may not mutate the catalog.
func (c *Catalog) Animals() []Animal {
	out := make([]Animal, len(c.animals))
	copy(out, c.animals)
	return out
}

// Toys returns the valid toy tokens in ascending order.
func (c *Catalog) Toys() []string {
	out := make([]string, 0, len(c.toys))
	for t := range c.toys {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// QuotaLimited reports whether species is capped at one individual per adopter.
func (c *Catalog) QuotaLimited(species Species) bool {
	return c.quotaLimited != "" && species == c.quotaLimited
}

// NeedsCompanion reports whether species requires the adopter to already hold
// at least one other animal, and matches toys as a set rather than a
// subsequence.
func (c *Catalog) NeedsCompanion(species Species) bool {
	return c.companion != "" && species == c.companion
}

// ConfigError describes an invalid catalog configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("catalog config: %s: %s", e.Field, e.Message)
}
