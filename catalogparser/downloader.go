package catalogparser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/omimtools/catalog-api/logging"
	"golang.org/x/text/encoding/charmap"
)

// downloadTimeout bounds one file retrieval.
const downloadTimeout = 5 * time.Minute

// fileHeaders are the known comment-prefixed header lines. The .tsv copy of
// each file gets its header uncommented so the column names survive as a
// real header row.
var fileHeaders = map[string]string{
	"mim2gene.txt": "# MIM Number\tMIM Entry Type (see FAQ 1.3 at https://omim.org/help/faq)\tEntrez Gene ID (NCBI)\tApproved Gene Symbol (HGNC)\tEnsembl Gene ID (Ensembl)",
	"genemap2.txt": "# Chromosome\tGenomic Position Start\tGenomic Position End\tCyto Location\tComputed Cyto Location\tMIM Number\tGene Symbols\tGene Name\tApproved Gene Symbol\tEntrez Gene ID\tEnsembl Gene ID\tComments\tPhenotypes\tMouse Gene Symbol/ID",
}

// Download endpoints. Variables so tests can point them at a local server.
var (
	staticBaseURL   = "https://omim.org/static/omim/data"
	downloadBaseURL = "https://data.omim.org/downloads"
)

// fileURL returns the download URL for an OMIM export. Most files live
// behind the API-key download endpoint; mim2gene.txt is served statically.
func fileURL(fileName, apiKey string) string {
	if fileName == "mim2gene.txt" {
		return staticBaseURL + "/mim2gene.txt"
	}
	return fmt.Sprintf("%s/%s/%s", downloadBaseURL, apiKey, fileName)
}

// downloadFile retrieves one OMIM export into dataDir. A non-200 response or
// an HTML error page instead of data is a hard error; stale cached data is
// never silently substituted.
func downloadFile(dataDir, fileName, apiKey string) error {
	url := fileURL(fileName, apiKey)

	client := &http.Client{Timeout: downloadTimeout}
	response, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", fileName, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	bodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body for %s: %w", fileName, err)
	}
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading %s: %s", response.StatusCode, fileName, string(bodyBytes))
	}

	// Some exports arrive in ISO-8859-1, so sniff before decoding.
	var reader io.Reader
	if utf8.Valid(bodyBytes) {
		reader = bytes.NewReader(bodyBytes)
	} else {
		reader = charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(bodyBytes))
	}

	decoded, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", fileName, err)
	}
	text := string(decoded)

	if strings.HasPrefix(text, "<!DOCTYPE html>") {
		return fmt.Errorf("unexpected response downloading %s: got an HTML page instead of data", fileName)
	}

	if err := os.WriteFile(filepath.Join(dataDir, fileName), []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", fileName, err)
	}

	if header, known := fileHeaders[fileName]; known {
		text = strings.Replace(text, header, header[2:], 1)
	}
	tsvName := strings.Replace(fileName, ".txt", ".tsv", 1)
	if err := os.WriteFile(filepath.Join(dataDir, tsvName), []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tsvName, err)
	}

	logging.Info("OMIM file retrieved", "file", fileName)
	return nil
}

// FetchRawFile returns the lines of an OMIM export from dataDir, downloading
// it first when download is true.
func FetchRawFile(dataDir, fileName, apiKey string, download bool) ([]string, error) {
	if download {
		if err := downloadFile(dataDir, fileName, apiKey); err != nil {
			return nil, err
		}
	}
	return readLines(filepath.Join(dataDir, fileName))
}

// readLines reads a cached export line by line.
func readLines(path string) ([]string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("Failed to close input file", "path", path, "error", err)
		}
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0), 1*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error in %s: %w", path, err)
	}
	return lines, nil
}

// downloadAll retrieves every OMIM export concurrently, failing if any
// single download failed.
func downloadAll(dataDir, apiKey string) error {
	files := []string{
		"mimTitles.txt",
		"mim2gene.txt",
		"genemap2.txt",
		"phenotypicSeries.txt",
		"morbidmap.txt",
	}

	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	for _, fileName := range files {
		wg.Add(1)
		go func(fileName string) {
			defer wg.Done()
			if err := downloadFile(dataDir, fileName, apiKey); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(fileName)
	}
	wg.Wait()

	if len(errs) > 0 {
		logging.Error("Download errors occurred", "errors", errs)
		return fmt.Errorf("download errors: %v", errs)
	}
	return nil
}
