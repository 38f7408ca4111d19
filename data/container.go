// Package data provides thread-safe storage for the parsed OMIM catalog.
// The CatalogContainer swaps complete snapshots atomically so readers never
// observe a half-built catalog during a refresh.
package data

import (
	"sync/atomic"
	"time"

	"github.com/omimtools/catalog-api/catalogparser/entities"
	"github.com/omimtools/catalog-api/interfaces"
	"github.com/omimtools/catalog-api/logging"
)

// Compile-time check to ensure CatalogContainer implements DataStore
var _ interfaces.DataStore = (*CatalogContainer)(nil)

// CatalogContainer holds the current catalog snapshot behind atomic values
// for zero-downtime updates.
type CatalogContainer struct {
	catalog         atomic.Value // *entities.Catalog
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewCatalogContainer creates a container holding an empty catalog.
func NewCatalogContainer() *CatalogContainer {
	cc := &CatalogContainer{}
	cc.catalog.Store(emptyCatalog())
	cc.lastUpdated.Store(time.Time{})
	cc.serverStartTime.Store(time.Time{})
	return cc
}

func emptyCatalog() *entities.Catalog {
	return &entities.Catalog{
		Titles:       make(map[string]entities.TitleRecord),
		Replacements: make(map[string][]string),
		GeneIndex:    make(map[string]entities.GeneIndexEntry),
		GeneMap:      make(map[string]string),
		PhenotypeMap: make(map[string]string),
		Nomenclature: make(map[string]string),
		Series:       make(map[string]entities.PhenotypicSeries),
		MorbidMap:    make(map[string]entities.MorbidMapEntry),
		References: entities.CrossReferences{
			PubMed:   make(map[string][]string),
			UMLS:     make(map[string][]string),
			Orphanet: make(map[string][]string),
		},
	}
}

// GetCatalog returns the current catalog snapshot. The returned value is
// read-only by convention; refreshes replace it wholesale.
func (cc *CatalogContainer) GetCatalog() *entities.Catalog {
	if v := cc.catalog.Load(); v != nil {
		if catalog, ok := v.(*entities.Catalog); ok {
			return catalog
		}
	}

	logging.Warn("Catalog snapshot is empty or invalid")
	return emptyCatalog()
}

// GetLastUpdated returns the timestamp of the last successful refresh.
func (cc *CatalogContainer) GetLastUpdated() time.Time {
	if v := cc.lastUpdated.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

// IsUpdating reports whether a refresh is currently in progress.
func (cc *CatalogContainer) IsUpdating() bool {
	return cc.updating.Load()
}

// GetServerStartTime returns the recorded process start time.
func (cc *CatalogContainer) GetServerStartTime() time.Time {
	if v := cc.serverStartTime.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

// SetServerStartTime records the process start time once at boot.
func (cc *CatalogContainer) SetServerStartTime(t time.Time) {
	cc.serverStartTime.Store(t)
}

// UpdateCatalog atomically publishes a new snapshot and stamps the update
// time.
func (cc *CatalogContainer) UpdateCatalog(catalog *entities.Catalog) {
	if catalog == nil {
		logging.Warn("Ignoring nil catalog update")
		return
	}
	cc.catalog.Store(catalog)
	cc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a refresh, returning false if one is
// already running.
func (cc *CatalogContainer) BeginUpdate() bool {
	return cc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a refresh.
func (cc *CatalogContainer) EndUpdate() {
	cc.updating.Store(false)
}
