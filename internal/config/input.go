package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openfiling/ctcalc/internal/domain"
)

// InputParser loads computation input files. An input file is a flat
// YAML mapping of canonical (or legacy-alias) field names to values;
// the parser hands the mapping to the normalizer unchanged.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadRawFromFile reads an input file into the raw key-value record
// the engine's entry point accepts.
func (ip *InputParser) LoadRawFromFile(filename string) (domain.RawInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var raw domain.RawInput
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if raw == nil {
		raw = domain.RawInput{}
	}
	return raw, nil
}

// LoadFromFile reads and normalizes an input file in one step.
func (ip *InputParser) LoadFromFile(filename string) (*domain.NormalizedInput, error) {
	raw, err := ip.LoadRawFromFile(filename)
	if err != nil {
		return nil, err
	}
	normalized, err := NormalizeInput(raw)
	if err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return normalized, nil
}
