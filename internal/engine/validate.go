package engine

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/abrigo/internal/catalog"
)

// Tokenize splits a raw comma-separated input into clean tokens.
//
// Whitespace around tokens is trimmed and empty tokens are dropped, so an
// empty or all-whitespace input yields an empty list. Tokens are NFC
// normalized so that visually identical toy names (and the accented
// species labels) compare equal regardless of input encoding form.
func Tokenize(raw string) []string {
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		tok := strings.TrimSpace(p)
		if tok == "" {
			continue
		}
		tokens = append(tokens, norm.NFC.String(tok))
	}
	return tokens
}

// validateInventory checks one adopter's toy list:
//   - no duplicate toy token within the inventory
//   - every token is a member of the valid toy set
//
// Runs before any allocation; failure short-circuits the whole pipeline.
func validateInventory(cat *catalog.Catalog, tokens []string, adopter string) error {
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if seen[tok] {
			return NewInvalidToyError(
				fmt.Sprintf("duplicate toy in %s inventory", adopter), tok)
		}
		seen[tok] = true
		if !cat.ValidToy(tok) {
			return NewInvalidToyError(
				fmt.Sprintf("unknown toy in %s inventory", adopter), tok)
		}
	}
	return nil
}

// validateOrder checks the animal processing order:
//   - no duplicate animal name
//   - every name exists in the catalog
func validateOrder(cat *catalog.Catalog, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return NewInvalidAnimalError("duplicate animal in processing order", name)
		}
		seen[name] = true
		if _, ok := cat.Lookup(name); !ok {
			return NewInvalidAnimalError("animal not in catalog", name)
		}
	}
	return nil
}
