// Package validation provides input and catalog validation for the catalog
// API.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/omimtools/catalog-api/catalogparser/entities"
	"github.com/omimtools/catalog-api/interfaces"
)

// Pre-compiled patterns for user-supplied identifiers.
var (
	mimNumberRegex = regexp.MustCompile(`^\d{6}$`)
	seriesIDRegex  = regexp.MustCompile(`^(PS)?(\d{6}(?:\.\d+)?)$`)
)

// Compile-time check to ensure CatalogValidator implements DataValidator
var _ interfaces.DataValidator = (*CatalogValidator)(nil)

// CatalogValidator implements the interfaces.DataValidator interface.
type CatalogValidator struct{}

// NewCatalogValidator creates a new catalog validator.
func NewCatalogValidator() *CatalogValidator {
	return &CatalogValidator{}
}

// ValidateMimNumber checks a user-supplied MIM number. Unlike the parser's
// repair heuristics, request input gets no repair: anything other than six
// digits is rejected.
func (v *CatalogValidator) ValidateMimNumber(input string) (string, error) {
	input = strings.TrimSpace(input)
	if !mimNumberRegex.MatchString(input) {
		return "", fmt.Errorf("MIM number must be exactly 6 digits, got %q", input)
	}
	return input, nil
}

// ValidateSeriesID checks a user-supplied phenotypic series ID, accepting it
// with or without the PS prefix and returning the bare series ID.
func (v *CatalogValidator) ValidateSeriesID(input string) (string, error) {
	input = strings.TrimSpace(input)
	m := seriesIDRegex.FindStringSubmatch(input)
	if m == nil {
		return "", fmt.Errorf("invalid phenotypic series ID %q", input)
	}
	return m[2], nil
}

// ValidateCatalog performs minimal integrity checks before a snapshot is
// published.
func (v *CatalogValidator) ValidateCatalog(catalog *entities.Catalog) error {
	if catalog == nil {
		return fmt.Errorf("catalog is nil")
	}
	if len(catalog.Titles) == 0 {
		return fmt.Errorf("catalog has no title records")
	}
	for mim := range catalog.Titles {
		if !mimNumberRegex.MatchString(mim) {
			return fmt.Errorf("title map contains a malformed MIM number key: %q", mim)
		}
	}
	return nil
}

// ReportDataQuality generates a data quality report for a parsed catalog.
// The report is informational; none of these findings block publication.
func (v *CatalogValidator) ReportDataQuality(catalog *entities.Catalog) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{}
	if catalog == nil {
		return report
	}

	for mim, successors := range catalog.Replacements {
		if _, ok := catalog.Titles[mim]; !ok {
			report.ReplacementsWithoutTitle = append(report.ReplacementsWithoutTitle, mim)
		}
		for _, successor := range successors {
			if _, ok := catalog.Titles[successor]; !ok {
				report.DanglingSuccessors = append(report.DanglingSuccessors, successor)
			}
		}
	}

	for _, series := range catalog.Series {
		if len(series.Members) == 0 {
			report.EmptySeries++
		}
	}

	for _, entry := range catalog.MorbidMap {
		if entry.PhenotypeMim == "" {
			report.MorbidWithoutPhenotype++
		}
	}

	for _, entry := range catalog.GeneIndex {
		if entry.GeneSymbol == "" {
			report.GenesWithoutSymbol++
		}
	}

	return report
}
