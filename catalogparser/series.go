package catalogparser

import (
	"log/slog"
	"strings"

	"github.com/omimtools/catalog-api/catalogparser/entities"
	"github.com/omimtools/catalog-api/metrics"
)

// ParsePhenotypicSeries parses phenotypicSeries.txt. The series ID is the
// first field with its fixed 2-character "PS" prefix stripped. A 2-field
// line sets the title; a 3-field line appends its second field to the
// member list. A series may span non-contiguous lines.
//
// Reprocessing a 2-field line for an already-seen series resets its member
// list. That mirrors the upstream export's behavior, where a title line is a
// fresh section header; see DESIGN.md before changing it.
func ParsePhenotypicSeries(lines []string, log *slog.Logger) map[string]entities.PhenotypicSeries {
	if log == nil {
		log = slog.Default()
	}

	series := make(map[string]entities.PhenotypicSeries)
	stats := &skipStats{}

	for _, line := range lines {
		fields, ok := classifyLine(line, stats)
		if !ok {
			continue
		}

		seriesID := strings.TrimSpace(fields[0])
		if len(seriesID) > 2 {
			seriesID = seriesID[2:]
		}

		switch len(fields) {
		case 2:
			series[seriesID] = entities.PhenotypicSeries{
				SeriesID: seriesID,
				Title:    strings.TrimSpace(fields[1]),
				Members:  []string{},
			}
		case 3:
			entry, seen := series[seriesID]
			if !seen {
				entry = entities.PhenotypicSeries{SeriesID: seriesID, Members: []string{}}
			}
			entry.Members = append(entry.Members, fields[1])
			series[seriesID] = entry
		default:
			// Other field counts carry no series data.
		}
	}

	metrics.RecordsParsed.WithLabelValues("phenotypicSeries").Set(float64(len(series)))
	return series
}
