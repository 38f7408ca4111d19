// Package interfaces defines core abstractions for the catalog API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"time"

	"github.com/omimtools/catalog-api/catalogparser/entities"
)

// DataQualityReport summarizes structural issues found in a parsed catalog.
type DataQualityReport struct {
	ReplacementsWithoutTitle []string // Replacement keys missing from the title map
	DanglingSuccessors       []string // Successor MIMs that resolve to no title record
	EmptySeries              int      // Phenotypic series with a title but no members
	MorbidWithoutPhenotype   int      // Morbid map entries whose phenotype MIM is empty
	GenesWithoutSymbol       int      // Gene index entries with no approved symbol
}

// DataStore defines the contract for catalog storage operations.
// It provides thread-safe access to the parsed catalog snapshot
// with atomic operations for zero-downtime updates.
type DataStore interface {
	// Data retrieval methods
	GetCatalog() *entities.Catalog
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	// Data update methods
	UpdateCatalog(catalog *entities.Catalog)
	BeginUpdate() bool
	EndUpdate()
}

// Parser defines the contract for producing a catalog snapshot from the
// OMIM flat-file exports. It handles retrieval, format parsing and
// cross-source reconciliation.
type Parser interface {
	ParseCatalog() (*entities.Catalog, error)
}

// Scheduler defines the contract for job scheduling and health monitoring.
// It manages automated catalog refreshes and staleness checks.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current system health status
	HealthCheck() (status string, details map[string]any, httpStatus int)

	// CalculateNextUpdate returns the next scheduled refresh time
	CalculateNextUpdate() time.Time
}

// DataValidator defines the contract for data validation operations.
type DataValidator interface {
	// ValidateMimNumber checks a user-supplied MIM number
	ValidateMimNumber(input string) (string, error)

	// ValidateSeriesID checks a user-supplied phenotypic series ID,
	// accepting it with or without the PS prefix
	ValidateSeriesID(input string) (string, error)

	// ValidateCatalog performs minimal integrity checks before a
	// snapshot is published
	ValidateCatalog(catalog *entities.Catalog) error

	// ReportDataQuality generates a data quality report for a catalog
	ReportDataQuality(catalog *entities.Catalog) *DataQualityReport
}
