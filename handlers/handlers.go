// Package handlers provides HTTP request handlers for the catalog API
// endpoints. It includes entry, gene, phenotypic series, morbid map and
// cross-reference lookups with input validation and JSON responses.
package handlers

import (
	"compress/gzip"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/omimtools/catalog-api/catalogparser/entities"
	"github.com/omimtools/catalog-api/interfaces"
	"github.com/omimtools/catalog-api/logging"
	"github.com/omimtools/catalog-api/validation"
)

// Minimum response size to consider compression (1KB)
const compressionThreshold = 1024

var validator = validation.NewCatalogValidator()

// RespondWithJSON writes a JSON response, gzip-compressed when the client
// accepts it and the payload is large enough to be worth it.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))

	shouldCompress := len(data) >= compressionThreshold &&
		strings.Contains(strings.ToLower(r.Header.Get("Accept-Encoding")), "gzip")

	if shouldCompress {
		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(code)
		gz := gzip.NewWriter(w)
		defer gz.Close()
		gz.Write(data)
		return
	}

	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error body with the given status code.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	jsonResponse, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Write(jsonResponse)
}

// EntryResponse aggregates everything known about one MIM number.
type EntryResponse struct {
	entities.TitleRecord
	Replacements []string `json:"replacements,omitempty"`
	GeneSymbol   string   `json:"approvedSymbol,omitempty"`
}

// GetEntry serves GET /entries/{mimNumber}. Obsolete entries include their
// successor MIM numbers so clients can follow moved records.
func GetEntry(dataStore interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mim, err := validator.ValidateMimNumber(chi.URLParam(r, "mimNumber"))
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		catalog := dataStore.GetCatalog()
		title, ok := catalog.Titles[mim]
		if !ok {
			RespondWithError(w, http.StatusNotFound, "no entry for MIM number "+mim)
			return
		}

		response := EntryResponse{
			TitleRecord:  title,
			Replacements: catalog.Replacements[mim],
			GeneSymbol:   catalog.Nomenclature[mim],
		}
		RespondWithJSON(w, r, http.StatusOK, response)
	}
}

// GetReplacements serves GET /entries/{mimNumber}/replacements. A present
// key with an empty list means the entry was removed rather than moved.
func GetReplacements(dataStore interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mim, err := validator.ValidateMimNumber(chi.URLParam(r, "mimNumber"))
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		catalog := dataStore.GetCatalog()
		successors, ok := catalog.Replacements[mim]
		if !ok {
			RespondWithError(w, http.StatusNotFound, "MIM number "+mim+" has not been moved or removed")
			return
		}

		RespondWithJSON(w, r, http.StatusOK, map[string]any{
			"mimNumber":  mim,
			"successors": successors,
			"removed":    len(successors) == 0,
		})
	}
}

// GetGene serves GET /genes/{mimNumber} from the full gene index.
func GetGene(dataStore interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mim, err := validator.ValidateMimNumber(chi.URLParam(r, "mimNumber"))
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		catalog := dataStore.GetCatalog()
		entry, ok := catalog.GeneIndex[mim]
		if !ok {
			RespondWithError(w, http.StatusNotFound, "no gene entry for MIM number "+mim)
			return
		}
		RespondWithJSON(w, r, http.StatusOK, entry)
	}
}

// GetGeneMap serves GET /genes, the MIM to Entrez gene ID map.
func GetGeneMap(dataStore interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, r, http.StatusOK, dataStore.GetCatalog().GeneMap)
	}
}

// GetPhenotypeMap serves GET /phenotypes, the phenotype-kind MIM map.
func GetPhenotypeMap(dataStore interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, r, http.StatusOK, dataStore.GetCatalog().PhenotypeMap)
	}
}

// GetSymbol serves GET /nomenclature/{mimNumber}, the merged approved-symbol
// lookup. MIM numbers dropped for conflicting symbols return 404.
func GetSymbol(dataStore interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mim, err := validator.ValidateMimNumber(chi.URLParam(r, "mimNumber"))
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		catalog := dataStore.GetCatalog()
		symbol, ok := catalog.Nomenclature[mim]
		if !ok {
			RespondWithError(w, http.StatusNotFound, "no approved symbol for MIM number "+mim)
			return
		}
		RespondWithJSON(w, r, http.StatusOK, map[string]string{
			"mimNumber":      mim,
			"approvedSymbol": symbol,
		})
	}
}

// GetSeries serves GET /series/{seriesId}, accepting the ID with or without
// its PS prefix.
func GetSeries(dataStore interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seriesID, err := validator.ValidateSeriesID(chi.URLParam(r, "seriesId"))
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		catalog := dataStore.GetCatalog()
		series, ok := catalog.Series[seriesID]
		if !ok {
			RespondWithError(w, http.StatusNotFound, "no phenotypic series "+seriesID)
			return
		}
		RespondWithJSON(w, r, http.StatusOK, series)
	}
}

// GetMorbid serves GET /morbid/{mimNumber}, the gene to phenotype and
// cytogenetic location association.
func GetMorbid(dataStore interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mim, err := validator.ValidateMimNumber(chi.URLParam(r, "mimNumber"))
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		catalog := dataStore.GetCatalog()
		entry, ok := catalog.MorbidMap[mim]
		if !ok {
			RespondWithError(w, http.StatusNotFound, "no morbid map entry for gene MIM number "+mim)
			return
		}
		RespondWithJSON(w, r, http.StatusOK, entry)
	}
}

// GetHgncID serves GET /hgnc/{symbol}, mapping an approved gene symbol to
// its HGNC identifier. The backing table is an optional input, so a missing
// table and an unknown symbol both answer 404.
func GetHgncID(dataStore interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := chi.URLParam(r, "symbol")

		catalog := dataStore.GetCatalog()
		hgncID, ok := catalog.HgncSymbolToID[symbol]
		if !ok {
			RespondWithError(w, http.StatusNotFound, "no HGNC identifier for symbol "+symbol)
			return
		}
		RespondWithJSON(w, r, http.StatusOK, map[string]string{
			"symbol": symbol,
			"hgncId": hgncID,
		})
	}
}

// GetReferences serves GET /references/{mimNumber}, the external
// cross-references recovered from the triple file.
func GetReferences(dataStore interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mim, err := validator.ValidateMimNumber(chi.URLParam(r, "mimNumber"))
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		catalog := dataStore.GetCatalog()
		pubmed := catalog.References.PubMed[mim]
		umls := catalog.References.UMLS[mim]
		orphanet := catalog.References.Orphanet[mim]
		if len(pubmed) == 0 && len(umls) == 0 && len(orphanet) == 0 {
			RespondWithError(w, http.StatusNotFound, "no cross-references for MIM number "+mim)
			return
		}

		RespondWithJSON(w, r, http.StatusOK, map[string]any{
			"mimNumber": mim,
			"pubmed":    pubmed,
			"umls":      umls,
			"orphanet":  orphanet,
		})
	}
}

// HealthCheck serves GET /health using the injected health checker.
func HealthCheck(checker interfaces.HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, details, httpStatus := checker.HealthCheck()
		details["status"] = status
		RespondWithJSON(w, r, httpStatus, details)
	}
}
