package entities

// GeneIndexEntry is one retained line of mim2gene.txt keyed by MIM number.
type GeneIndexEntry struct {
	MimNumber  string `json:"mimNumber"`
	EntryKind  string `json:"entryKind"`
	EntrezID   string `json:"entrezId"`
	GeneSymbol string `json:"geneSymbol"`
	EnsemblID  string `json:"ensemblId"`
}
