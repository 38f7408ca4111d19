package data

import (
	"testing"
	"time"

	"github.com/omimtools/catalog-api/catalogparser/entities"
)

func sampleCatalog() *entities.Catalog {
	return &entities.Catalog{
		Titles: map[string]entities.TitleRecord{
			"100640": {MimNumber: "100640", Type: entities.Gene, PreferredLabel: "ALDH1A1"},
		},
		Replacements: map[string][]string{},
		GeneIndex:    map[string]entities.GeneIndexEntry{},
		GeneMap:      map[string]string{"100640": "216"},
		PhenotypeMap: map[string]string{},
		Nomenclature: map[string]string{"100640": "ALDH1A1"},
		Series:       map[string]entities.PhenotypicSeries{},
		MorbidMap:    map[string]entities.MorbidMapEntry{},
	}
}

func TestNewCatalogContainerIsEmpty(t *testing.T) {
	cc := NewCatalogContainer()

	catalog := cc.GetCatalog()
	if catalog == nil {
		t.Fatal("GetCatalog returned nil")
	}
	if len(catalog.Titles) != 0 {
		t.Errorf("new container has %d titles, want 0", len(catalog.Titles))
	}
	if !cc.GetLastUpdated().IsZero() {
		t.Error("new container should have a zero last-updated time")
	}
	if cc.IsUpdating() {
		t.Error("new container should not report an update in progress")
	}
}

func TestUpdateCatalogPublishesSnapshot(t *testing.T) {
	cc := NewCatalogContainer()
	before := time.Now()

	cc.UpdateCatalog(sampleCatalog())

	catalog := cc.GetCatalog()
	if catalog.Titles["100640"].PreferredLabel != "ALDH1A1" {
		t.Errorf("unexpected catalog %+v", catalog.Titles)
	}
	if cc.GetLastUpdated().Before(before) {
		t.Error("last updated was not stamped")
	}
}

func TestUpdateCatalogIgnoresNil(t *testing.T) {
	cc := NewCatalogContainer()
	cc.UpdateCatalog(sampleCatalog())
	stamp := cc.GetLastUpdated()

	cc.UpdateCatalog(nil)

	if cc.GetCatalog() == nil || len(cc.GetCatalog().Titles) == 0 {
		t.Error("nil update must not clobber the published snapshot")
	}
	if !cc.GetLastUpdated().Equal(stamp) {
		t.Error("nil update must not restamp last updated")
	}
}

func TestBeginUpdateIsExclusive(t *testing.T) {
	cc := NewCatalogContainer()

	if !cc.BeginUpdate() {
		t.Fatal("first BeginUpdate should succeed")
	}
	if cc.BeginUpdate() {
		t.Error("second BeginUpdate should fail while one is running")
	}
	cc.EndUpdate()
	if !cc.BeginUpdate() {
		t.Error("BeginUpdate should succeed again after EndUpdate")
	}
}

func TestServerStartTime(t *testing.T) {
	cc := NewCatalogContainer()
	now := time.Now()
	cc.SetServerStartTime(now)
	if !cc.GetServerStartTime().Equal(now) {
		t.Error("server start time roundtrip failed")
	}
}
