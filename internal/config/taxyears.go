package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/openfiling/ctcalc/internal/domain"
)

// taxYearFile is the on-disk shape of a tax year reference table.
type taxYearFile struct {
	TaxYears []domain.TaxYearDefinition `yaml:"tax_years"`
}

// LoadTaxYearsFromFile reads a reference table override file. Entries
// are validated individually and returned in chronological order.
func LoadTaxYearsFromFile(filename string) ([]domain.TaxYearDefinition, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tax year file %s: %w", filename, err)
	}

	var file taxYearFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tax year file: %w", err)
	}
	if len(file.TaxYears) == 0 {
		return nil, fmt.Errorf("tax year file %s defines no tax years", filename)
	}

	for _, ty := range file.TaxYears {
		if err := ty.Validate(); err != nil {
			return nil, fmt.Errorf("tax year file validation failed: %w", err)
		}
	}

	sorted := make([]domain.TaxYearDefinition, len(file.TaxYears))
	copy(sorted, file.TaxYears)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].FYYear < sorted[j].FYYear })
	return sorted, nil
}

// MergeTaxYears overlays override entries on a base table, replacing
// by financial year. Neither input slice is modified.
func MergeTaxYears(base, overrides []domain.TaxYearDefinition) []domain.TaxYearDefinition {
	byYear := make(map[int]domain.TaxYearDefinition, len(base)+len(overrides))
	for _, ty := range base {
		byYear[ty.FYYear] = ty
	}
	for _, ty := range overrides {
		byYear[ty.FYYear] = ty
	}

	merged := make([]domain.TaxYearDefinition, 0, len(byYear))
	for _, ty := range byYear {
		merged = append(merged, ty)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].FYYear < merged[j].FYYear })
	return merged
}
