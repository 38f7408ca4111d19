package entities

// TitleRecord is one parsed line of mimTitles.txt. Immutable after parse.
type TitleRecord struct {
	MimNumber         string    `json:"mimNumber"`
	Type              EntryType `json:"type"`
	PreferredLabel    string    `json:"preferredLabel"`
	AlternativeLabels []string  `json:"alternativeLabels"`
	IncludedLabels    []string  `json:"includedLabels"`
}
