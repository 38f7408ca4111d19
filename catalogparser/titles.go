package catalogparser

import (
	"log/slog"
	"strings"

	"github.com/omimtools/catalog-api/catalogparser/entities"
	"github.com/omimtools/catalog-api/metrics"
)

const movedToPrefix = "MOVED TO "

// markerToType maps the symbolic first column of mimTitles.txt to an entry
// type. Markers outside this table are logged and skipped, never fatal.
var markerToType = map[string]entities.EntryType{
	"Caret":       entities.Obsolete,
	"Asterisk":    entities.Gene,
	"NULL":        entities.Suspected,
	"Number Sign": entities.Phenotype,
	"Percent":     entities.HeritablePhenotypicMarker,
	"Plus":        entities.HasAffectedFeature,
}

// splitLabels breaks the raw alternative/included title column into its
// individual labels. OMIM separates them with double semicolons.
func splitLabels(raw string) []string {
	if raw == "" {
		return nil
	}
	var labels []string
	for _, part := range strings.Split(raw, ";;") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}
	return labels
}

// parseSuccessors tokenizes the remainder of a "MOVED TO ..." label and
// repairs each token into a MIM number. The literal connector token AND is
// discarded and unrepairable tokens are dropped rather than treated as fatal.
func parseSuccessors(label string, log *slog.Logger) []string {
	successors := []string{}
	for _, token := range strings.Fields(label[len(movedToPrefix):]) {
		if token == "AND" {
			continue
		}
		if mim, ok := RepairMimNumber(token, log); ok {
			successors = append(successors, mim)
		}
	}
	return successors
}

// ParseTitles parses mimTitles.txt lines into the title map and the
// replacement map. Obsolete entries always get a replacement entry; the
// successor list is empty when the record was removed rather than moved.
func ParseTitles(lines []string, log *slog.Logger) (map[string]entities.TitleRecord, map[string][]string) {
	if log == nil {
		log = slog.Default()
	}

	titles := make(map[string]entities.TitleRecord)
	replaced := make(map[string][]string)
	stats := &skipStats{}

	for _, line := range lines {
		fields, ok := classifyLine(line, stats)
		if !ok {
			continue
		}
		if len(fields) != 5 {
			stats.badFields++
			log.Warn("mimTitles - invalid field count", "fields", len(fields), "line", line)
			continue
		}

		marker := strings.TrimSpace(fields[0])
		mimNumber := strings.TrimSpace(fields[1])
		prefLabel := strings.TrimSpace(fields[2])
		altLabel := strings.TrimSpace(fields[3])
		incLabel := strings.TrimSpace(fields[4])

		if marker == "" && mimNumber == "" && prefLabel == "" && altLabel == "" && incLabel == "" {
			stats.emptyLines++
			continue
		}

		if entryType, known := markerToType[marker]; known {
			titles[mimNumber] = entities.TitleRecord{
				MimNumber:         mimNumber,
				Type:              entryType,
				PreferredLabel:    prefLabel,
				AlternativeLabels: splitLabels(altLabel),
				IncludedLabels:    splitLabels(incLabel),
			}
		} else {
			log.Error("Unknown MIM entry type marker", "marker", marker, "line", line)
		}

		// Caret marks moved, removed or split entries. Moved entries name
		// their successors in the preferred label.
		if marker == "Caret" {
			replaced[mimNumber] = []string{}
			if strings.HasPrefix(prefLabel, movedToPrefix) {
				replaced[mimNumber] = parseSuccessors(prefLabel, log)
			}
		}
	}

	if stats.any() {
		log.Info("mimTitles.txt skip statistics",
			"empty_lines", stats.emptyLines,
			"comment_lines", stats.commentLines,
			"bad_field_counts", stats.badFields,
			"total_lines", stats.lineCount,
			"records_parsed", len(titles))
	}
	metrics.RecordsParsed.WithLabelValues("mimTitles").Set(float64(len(titles)))

	return titles, replaced
}
