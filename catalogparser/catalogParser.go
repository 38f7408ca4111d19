package catalogparser

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/omimtools/catalog-api/catalogparser/entities"
	"github.com/omimtools/catalog-api/metrics"
)

// Column names of the two nomenclature cross-reference tables.
const (
	mim2geneMimColumn    = "MIM Number"
	mim2geneSymbolColumn = "Approved Gene Symbol (HGNC)"
	genemapSymbolColumn  = "Approved Gene Symbol"
	phenotypicSeriesFile = "phenotypicSeries.txt"
	turtleFile           = "omim.ttl"
	hgncCompleteSetFile  = "hgnc_complete_set.txt"
)

// sourceLines holds the raw line sequences of every input file for one
// parse run. All retrieval happens up front so a failed download aborts
// before any map is built.
type sourceLines struct {
	titles    []string
	geneIndex []string
	mim2gene  []string
	genemap   []string
	series    []string
	morbid    []string
	turtle    []string
}

func fetchSources(dataDir, apiKey string, download bool) (*sourceLines, error) {
	if download {
		if err := downloadAll(dataDir, apiKey); err != nil {
			return nil, err
		}
	}

	src := &sourceLines{}
	reads := []struct {
		file string
		dst  *[]string
	}{
		{"mimTitles.txt", &src.titles},
		{"mim2gene.txt", &src.geneIndex},
		{"mim2gene.tsv", &src.mim2gene},
		{"genemap2.tsv", &src.genemap},
		{phenotypicSeriesFile, &src.series},
		{"morbidmap.txt", &src.morbid},
		{turtleFile, &src.turtle},
	}
	for _, r := range reads {
		lines, err := FetchRawFile(dataDir, r.file, apiKey, false)
		if err != nil {
			if r.file == turtleFile {
				// The turtle export is not part of the keyed download set and
				// has to be provisioned into the data directory separately.
				return nil, fmt.Errorf("%s must be provided in %s, it is not covered by the download endpoint: %w", turtleFile, dataDir, err)
			}
			return nil, err
		}
		*r.dst = lines
	}
	return src, nil
}

// ParseCatalog fetches all OMIM exports and runs every format parser,
// assembling the full read-only catalog snapshot. The per-file parsers
// share no state and run concurrently.
func ParseCatalog(dataDir, apiKey string, download bool, log *slog.Logger) (*entities.Catalog, error) {
	if log == nil {
		log = slog.Default()
	}
	started := time.Now()

	src, err := fetchSources(dataDir, apiKey, download)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	wg.Add(5)

	type titlesResult struct {
		titles       map[string]entities.TitleRecord
		replacements map[string][]string
	}
	type genesResult struct {
		index    map[string]entities.GeneIndexEntry
		genes    map[string]string
		phenos   map[string]string
		symbols  map[string]string
		parseErr error
	}

	titlesChan := make(chan titlesResult, 1)
	genesChan := make(chan genesResult, 1)
	seriesChan := make(chan map[string]entities.PhenotypicSeries, 1)
	morbidChan := make(chan map[string]entities.MorbidMapEntry, 1)
	refsChan := make(chan entities.CrossReferences, 1)

	go func() {
		defer wg.Done()
		titles, replacements := ParseTitles(src.titles, log)
		titlesChan <- titlesResult{titles: titles, replacements: replacements}
	}()

	go func() {
		defer wg.Done()
		result := genesResult{
			index: ParseGeneIndex(src.geneIndex, log),
		}
		result.genes, result.phenos = ParseGenePhenotypeMaps(src.geneIndex, log)

		primary, err := ParseNomenclatureTable(src.mim2gene, mim2geneMimColumn, mim2geneSymbolColumn, log)
		if err != nil {
			result.parseErr = err
			genesChan <- result
			return
		}
		secondary, err := ParseNomenclatureTable(src.genemap, mim2geneMimColumn, genemapSymbolColumn, log)
		if err != nil {
			result.parseErr = err
			genesChan <- result
			return
		}
		result.symbols = MergeNomenclature(primary, secondary, log)
		genesChan <- result
	}()

	go func() {
		defer wg.Done()
		seriesChan <- ParsePhenotypicSeries(src.series, log)
	}()

	go func() {
		defer wg.Done()
		morbidChan <- ParseMorbidMap(src.morbid, log)
	}()

	go func() {
		defer wg.Done()
		refsChan <- ExtractCrossReferences(src.turtle, log)
	}()

	wg.Wait()

	titles := <-titlesChan
	genes := <-genesChan
	if genes.parseErr != nil {
		return nil, genes.parseErr
	}

	catalog := &entities.Catalog{
		Titles:       titles.titles,
		Replacements: titles.replacements,
		GeneIndex:    genes.index,
		GeneMap:      genes.genes,
		PhenotypeMap: genes.phenos,
		Nomenclature: genes.symbols,
		Series:       <-seriesChan,
		MorbidMap:    <-morbidChan,
		References:   <-refsChan,
	}

	if len(catalog.Titles) == 0 {
		return nil, fmt.Errorf("mimTitles.txt produced no entries, refusing to publish an empty catalog")
	}

	// The HGNC complete set is a supplementary local input; parse it when
	// present, skip quietly otherwise.
	if _, err := os.Stat(filepath.Join(dataDir, hgncCompleteSetFile)); err == nil {
		hgncLines, err := FetchRawFile(dataDir, hgncCompleteSetFile, apiKey, false)
		if err != nil {
			return nil, err
		}
		catalog.HgncSymbolToID, err = ParseHgncSymbolIDMap(hgncLines, log)
		if err != nil {
			return nil, err
		}
	}

	metrics.ParseDuration.Observe(time.Since(started).Seconds())
	log.Info("OMIM catalog parsed",
		"titles", len(catalog.Titles),
		"replacements", len(catalog.Replacements),
		"gene_index", len(catalog.GeneIndex),
		"genes", len(catalog.GeneMap),
		"phenotypes", len(catalog.PhenotypeMap),
		"nomenclature", len(catalog.Nomenclature),
		"series", len(catalog.Series),
		"morbid", len(catalog.MorbidMap),
		"duration", time.Since(started).String())

	return catalog, nil
}
