package entities

// EntryType classifies a MIM entry, derived from the symbolic marker in the
// first column of mimTitles.txt.
type EntryType string

const (
	Obsolete                  EntryType = "obsolete"
	Gene                      EntryType = "gene"
	Suspected                 EntryType = "suspected"
	Phenotype                 EntryType = "phenotype"
	HeritablePhenotypicMarker EntryType = "heritable_phenotypic_marker"
	HasAffectedFeature        EntryType = "has_affected_feature"
)
