package entities

// CrossReferences holds external identifiers recovered from the serialized
// triple file, one ordered list per vocabulary, keyed by MIM number.
type CrossReferences struct {
	PubMed   map[string][]string `json:"pubmed"`
	UMLS     map[string][]string `json:"umls"`
	Orphanet map[string][]string `json:"orphanet"`
}

// Catalog is the full read-only snapshot produced by one parse run. No map
// is mutated after construction; refreshes build a new Catalog.
type Catalog struct {
	Titles       map[string]TitleRecord      `json:"titles"`
	Replacements map[string][]string         `json:"replacements"`
	GeneIndex    map[string]GeneIndexEntry   `json:"geneIndex"`
	GeneMap      map[string]string           `json:"geneMap"`
	PhenotypeMap map[string]string           `json:"phenotypeMap"`
	Nomenclature map[string]string           `json:"nomenclature"`
	Series       map[string]PhenotypicSeries `json:"series"`
	MorbidMap    map[string]MorbidMapEntry   `json:"morbidMap"`
	References   CrossReferences             `json:"references"`

	// HgncSymbolToID maps approved symbols to bare HGNC IDs. Populated only
	// when the HGNC complete set table is present in the data directory.
	HgncSymbolToID map[string]string `json:"hgncSymbolToId,omitempty"`
}
