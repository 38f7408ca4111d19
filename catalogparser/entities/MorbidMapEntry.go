package entities

// MorbidMapEntry associates a gene MIM number with a phenotype and its
// cytogenetic location. PhenotypeMim is empty when the phenotype column
// could not be parsed; the gene to location association is still kept.
type MorbidMapEntry struct {
	GeneMim      string `json:"geneMim"`
	PhenotypeMim string `json:"phenotypeMim"`
	CytoLocation string `json:"cytoLocation"`
}
