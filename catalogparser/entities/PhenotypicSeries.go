package entities

// PhenotypicSeries groups clinically related phenotype entries. Members
// accumulate across non-contiguous lines of phenotypicSeries.txt.
type PhenotypicSeries struct {
	SeriesID string   `json:"seriesId"`
	Title    string   `json:"title"`
	Members  []string `json:"members"`
}
