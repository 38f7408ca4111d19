package catalogparser

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/omimtools/catalog-api/catalogparser/entities"
	"github.com/omimtools/catalog-api/metrics"
)

// Entry kinds used by mim2gene.txt and genemap2.txt.
const (
	kindGene              = "gene"
	kindGenePhenotype     = "gene/phenotype"
	kindPhenotype         = "phenotype"
	kindPredominantlyPhen = "predominantly phenotypes"
	kindMovedRemoved      = "moved/removed"
)

// ParseGeneIndex parses mim2gene.txt into the full gene index. Lines whose
// kind is moved/removed or phenotype-only are dropped entirely; they never
// appear in the resulting map.
func ParseGeneIndex(lines []string, log *slog.Logger) map[string]entities.GeneIndexEntry {
	if log == nil {
		log = slog.Default()
	}

	index := make(map[string]entities.GeneIndexEntry)
	stats := &skipStats{}
	excluded := 0

	for _, line := range lines {
		fields, ok := classifyLine(line, stats)
		if !ok {
			continue
		}
		if len(fields) >= 2 {
			switch strings.TrimSpace(fields[1]) {
			case kindMovedRemoved, kindPhenotype, kindPredominantlyPhen:
				excluded++
				continue
			}
		}
		if len(fields) != 5 {
			stats.badFields++
			log.Warn("mim2gene - invalid line", "fields", len(fields), "line", line)
			continue
		}

		mimNumber := strings.TrimSpace(fields[0])
		index[mimNumber] = entities.GeneIndexEntry{
			MimNumber:  mimNumber,
			EntryKind:  strings.TrimSpace(fields[1]),
			EntrezID:   strings.TrimSpace(fields[2]),
			GeneSymbol: strings.TrimSpace(fields[3]),
			EnsemblID:  strings.TrimSpace(fields[4]),
		}
	}

	if stats.any() {
		log.Info("mim2gene.txt skip statistics",
			"empty_lines", stats.emptyLines,
			"comment_lines", stats.commentLines,
			"bad_field_counts", stats.badFields,
			"excluded_kinds", excluded,
			"total_lines", stats.lineCount,
			"records_parsed", len(index))
	}
	metrics.RecordsParsed.WithLabelValues("mim2gene").Set(float64(len(index)))

	return index
}

// ParseGenePhenotypeMaps splits the index lines into a gene map and a
// phenotype map, MIM number to Entrez gene ID. Only lines carrying a
// non-empty ID column are retained.
func ParseGenePhenotypeMaps(lines []string, log *slog.Logger) (map[string]string, map[string]string) {
	if log == nil {
		log = slog.Default()
	}

	geneMap := make(map[string]string)
	phenoMap := make(map[string]string)
	stats := &skipStats{}

	for _, line := range lines {
		fields, ok := classifyLine(line, stats)
		if !ok {
			continue
		}
		if len(fields) < 3 {
			stats.badFields++
			continue
		}

		mimNumber := strings.TrimSpace(fields[0])
		kind := strings.TrimSpace(fields[1])
		entrezID := strings.TrimSpace(fields[2])
		if entrezID == "" {
			continue
		}

		switch kind {
		case kindGene, kindGenePhenotype:
			geneMap[mimNumber] = entrezID
		case kindPhenotype, kindPredominantlyPhen:
			phenoMap[mimNumber] = entrezID
		}
	}

	return geneMap, phenoMap
}

// ParseNomenclatureTable reads a tab-separated table with a header row and
// returns MIM number to approved symbol. mimColumn values are parsed as
// integers first so malformed rows surface early, then normalized back to
// the 6-digit string form used by every other map.
func ParseNomenclatureTable(lines []string, mimColumn, symbolColumn string, log *slog.Logger) (map[string]string, error) {
	if log == nil {
		log = slog.Default()
	}

	header, rows, err := splitTableHeader(lines)
	if err != nil {
		return nil, err
	}
	mimIdx, symbolIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case mimColumn:
			mimIdx = i
		case symbolColumn:
			symbolIdx = i
		}
	}
	if mimIdx < 0 || symbolIdx < 0 {
		return nil, fmt.Errorf("nomenclature table missing columns %q and/or %q", mimColumn, symbolColumn)
	}

	table := make(map[string]string)
	for _, fields := range rows {
		if len(fields) <= mimIdx || len(fields) <= symbolIdx {
			continue
		}
		symbol := strings.TrimSpace(fields[symbolIdx])
		if symbol == "" {
			continue
		}
		mimInt, err := strconv.Atoi(strings.TrimSpace(fields[mimIdx]))
		if err != nil {
			log.Warn("nomenclature table - non-integer MIM column", "value", fields[mimIdx])
			continue
		}
		table[strconv.Itoa(mimInt)] = symbol
	}
	return table, nil
}

// splitTableHeader separates the first data-bearing line (the header) from
// the remaining rows, dropping comments and blanks.
func splitTableHeader(lines []string) ([]string, [][]string, error) {
	stats := &skipStats{}
	var header []string
	var rows [][]string

	for _, line := range lines {
		fields, ok := classifyLine(line, stats)
		if !ok {
			continue
		}
		if header == nil {
			header = fields
			continue
		}
		rows = append(rows, fields)
	}
	if header == nil {
		return nil, nil, fmt.Errorf("nomenclature table has no header row")
	}
	return header, rows, nil
}

// MergeNomenclature reconciles two independently sourced symbol tables.
// The primary table wins when both agree; a disagreement drops the MIM
// number entirely, because an ambiguous mapping is worse than a missing one.
func MergeNomenclature(primary, secondary map[string]string, log *slog.Logger) map[string]string {
	if log == nil {
		log = slog.Default()
	}

	merged := make(map[string]string, len(primary))
	for mim, symbol := range primary {
		merged[mim] = symbol
	}
	for mim, symbol := range secondary {
		existing, seen := merged[mim]
		if !seen {
			merged[mim] = symbol
			continue
		}
		if existing != symbol {
			log.Warn("MIM number mapped to two different approved symbols, mapping removed",
				"mim_number", mim, "primary_symbol", existing, "secondary_symbol", symbol)
			metrics.NomenclatureConflicts.Inc()
			delete(merged, mim)
		}
	}
	return merged
}

// ParseHgncSymbolIDMap reads the HGNC complete set table and maps approved
// symbol to the numeric part of the HGNC ID (formatted "HGNC:<id>").
func ParseHgncSymbolIDMap(lines []string, log *slog.Logger) (map[string]string, error) {
	if log == nil {
		log = slog.Default()
	}

	header, rows, err := splitTableHeader(lines)
	if err != nil {
		return nil, err
	}
	idIdx, symbolIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "hgnc_id":
			idIdx = i
		case "symbol":
			symbolIdx = i
		}
	}
	if idIdx < 0 || symbolIdx < 0 {
		return nil, fmt.Errorf("hgnc table missing hgnc_id and/or symbol columns")
	}

	symbolToID := make(map[string]string)
	for _, fields := range rows {
		if len(fields) <= idIdx || len(fields) <= symbolIdx {
			continue
		}
		symbol := strings.TrimSpace(fields[symbolIdx])
		rawID := strings.TrimSpace(fields[idIdx])
		if symbol == "" || rawID == "" {
			continue
		}
		if _, id, found := strings.Cut(rawID, ":"); found {
			symbolToID[symbol] = id
		} else {
			log.Warn("hgnc table - unexpected hgnc_id format", "hgnc_id", rawID)
		}
	}
	return symbolToID, nil
}
