package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario for the adoption engine.
// A scenario supplies the three raw inputs and the expected outcome:
// either a validation error or the final placements.
type Scenario struct {
	// Name uniquely identifies this scenario. Also used as the golden file
	// name, so it should be filesystem-safe.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Adopter1 and Adopter2 are the raw comma-separated toy inventories.
	Adopter1 string `yaml:"adopter1"`
	Adopter2 string `yaml:"adopter2"`

	// Order is the raw comma-separated animal processing order.
	Order string `yaml:"order"`

	// Expect specifies the expected outcome.
	Expect ExpectClause `yaml:"expect"`
}

// ExpectClause specifies the expected engine outcome.
// Exactly one of Error or Placements/Lines should be set.
type ExpectClause struct {
	// Error is the expected user-facing error label
	// ("Brinquedo inválido" or "Animal inválido"). Empty means success.
	Error string `yaml:"error,omitempty"`

	// Placements maps animal name to expected destination
	// (abrigo, pessoa 1, pessoa 2). Subset match is not supported: every
	// processed animal must be listed.
	Placements map[string]string `yaml:"placements,omitempty"`

	// Lines optionally pins the exact rendered output lines, in order.
	Lines []string `yaml:"lines,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "placement:" vs "placements:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml and *.yml file in dir, sorted by file
// name for deterministic execution order.
func LoadScenarios(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and consistent.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Expect.Error == "" && s.Expect.Placements == nil && s.Expect.Lines == nil {
		return fmt.Errorf("expect must specify an error, placements, or lines")
	}
	if s.Expect.Error != "" && (s.Expect.Placements != nil || s.Expect.Lines != nil) {
		return fmt.Errorf("expect.error is exclusive with placements and lines")
	}
	return nil
}
