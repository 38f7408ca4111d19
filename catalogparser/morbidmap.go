package catalogparser

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/omimtools/catalog-api/catalogparser/entities"
	"github.com/omimtools/catalog-api/metrics"
)

// The phenotype column ends with ", <mim> (<status digit>)".
var morbidPhenotypeRegex = regexp.MustCompile(`.*,\s+(\d+)\s\(\d\)`)

// ParseMorbidMap parses morbidmap.txt into gene MIM number keyed entries.
// When the phenotype column does not match the expected pattern the
// phenotype MIM is recorded as an empty string; the gene to cytogenetic
// location association is kept either way. Later lines for the same gene
// MIM overwrite earlier ones.
func ParseMorbidMap(lines []string, log *slog.Logger) map[string]entities.MorbidMapEntry {
	if log == nil {
		log = slog.Default()
	}

	morbid := make(map[string]entities.MorbidMapEntry)
	stats := &skipStats{}

	for _, line := range lines {
		fields, ok := classifyLine(line, stats)
		if !ok {
			continue
		}
		if len(fields) < 4 {
			stats.badFields++
			log.Warn("morbidmap - invalid field count", "fields", len(fields), "line", line)
			continue
		}

		phenotypeMim := ""
		if m := morbidPhenotypeRegex.FindStringSubmatch(fields[0]); m != nil {
			phenotypeMim = m[1]
		}

		geneMim := strings.TrimSpace(fields[2])
		morbid[geneMim] = entities.MorbidMapEntry{
			GeneMim:      geneMim,
			PhenotypeMim: phenotypeMim,
			CytoLocation: strings.TrimSpace(fields[3]),
		}
	}

	if stats.any() {
		log.Info("morbidmap.txt skip statistics",
			"empty_lines", stats.emptyLines,
			"comment_lines", stats.commentLines,
			"bad_field_counts", stats.badFields,
			"total_lines", stats.lineCount,
			"records_parsed", len(morbid))
	}
	metrics.RecordsParsed.WithLabelValues("morbidmap").Set(float64(len(morbid)))

	return morbid
}
