package catalog

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Load builds a catalog from a CUE config file.
// Uses the CUE SDK's Go API directly (not CLI subprocess).
//
// Expected shape:
//
//	toys: ["RATO", "BOLA", ...]
//	quota_limited_species: "gato"
//	companion_species: "jabuti"
//	animal: {
//		Rex: { species: "cão", toys: ["RATO", "BOLA"] }
//		...
//	}
//
// quota_limited_species and companion_species are optional; omitting them
// disables the corresponding rule. Animal declaration order follows the
// order of fields in the file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog config: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, &ConfigError{Field: "file", Message: err.Error()}
	}
	return fromCUE(v)
}

// fromCUE parses a catalog from a root CUE value.
func fromCUE(v cue.Value) (*Catalog, error) {
	toys, err := parseToys(v)
	if err != nil {
		return nil, err
	}

	quotaLimited, err := optionalSpecies(v, "quota_limited_species")
	if err != nil {
		return nil, err
	}
	companion, err := optionalSpecies(v, "companion_species")
	if err != nil {
		return nil, err
	}

	animals, err := parseAnimals(v)
	if err != nil {
		return nil, err
	}

	return New(animals, toys, quotaLimited, companion)
}

func parseToys(v cue.Value) ([]string, error) {
	toysVal := v.LookupPath(cue.ParsePath("toys"))
	if !toysVal.Exists() {
		return nil, &ConfigError{Field: "toys", Message: "toys is required"}
	}
	iter, err := toysVal.List()
	if err != nil {
		return nil, &ConfigError{Field: "toys", Message: fmt.Sprintf("toys must be a list: %v", err)}
	}
	var toys []string
	for iter.Next() {
		tok, err := iter.Value().String()
		if err != nil {
			return nil, &ConfigError{Field: "toys", Message: fmt.Sprintf("toy must be a string: %v", err)}
		}
		toys = append(toys, tok)
	}
	return toys, nil
}

func optionalSpecies(v cue.Value, field string) (Species, error) {
	val := v.LookupPath(cue.ParsePath(field))
	if !val.Exists() {
		return "", nil
	}
	s, err := val.String()
	if err != nil {
		return "", &ConfigError{Field: field, Message: fmt.Sprintf("must be a string: %v", err)}
	}
	return Species(s), nil
}

func parseAnimals(v cue.Value) ([]Animal, error) {
	animalsVal := v.LookupPath(cue.ParsePath("animal"))
	if !animalsVal.Exists() {
		return nil, &ConfigError{Field: "animal", Message: "animal is required"}
	}
	iter, err := animalsVal.Fields()
	if err != nil {
		return nil, &ConfigError{Field: "animal", Message: fmt.Sprintf("animal must be a struct: %v", err)}
	}

	var animals []Animal
	for iter.Next() {
		name := iter.Label()
		entry, err := parseAnimal(name, iter.Value())
		if err != nil {
			return nil, err
		}
		animals = append(animals, entry)
	}
	return animals, nil
}

func parseAnimal(name string, v cue.Value) (Animal, error) {
	field := "animal." + name

	speciesVal := v.LookupPath(cue.ParsePath("species"))
	if !speciesVal.Exists() {
		return Animal{}, &ConfigError{Field: field + ".species", Message: "species is required"}
	}
	species, err := speciesVal.String()
	if err != nil {
		return Animal{}, &ConfigError{Field: field + ".species", Message: fmt.Sprintf("must be a string: %v", err)}
	}

	toysVal := v.LookupPath(cue.ParsePath("toys"))
	if !toysVal.Exists() {
		return Animal{}, &ConfigError{Field: field + ".toys", Message: "toys is required"}
	}
	iter, err := toysVal.List()
	if err != nil {
		return Animal{}, &ConfigError{Field: field + ".toys", Message: fmt.Sprintf("must be a list: %v", err)}
	}
	var toys []string
	for iter.Next() {
		tok, err := iter.Value().String()
		if err != nil {
			return Animal{}, &ConfigError{Field: field + ".toys", Message: fmt.Sprintf("toy must be a string: %v", err)}
		}
		toys = append(toys, tok)
	}

	return Animal{Name: name, Species: Species(species), FavoriteToys: toys}, nil
}
