package catalogparser

import (
	"log/slog"

	"github.com/omimtools/catalog-api/catalogparser/entities"
	"github.com/omimtools/catalog-api/interfaces"
)

// Compile-time check to ensure OmimParser implements Parser interface
var _ interfaces.Parser = (*OmimParser)(nil)

// OmimParser implements the Parser interface around ParseCatalog, carrying
// the data directory, API key and diagnostics logger as injected state.
type OmimParser struct {
	dataDir  string
	apiKey   string
	download bool
	log      *slog.Logger
}

// NewOmimParser creates a new OmimParser instance.
func NewOmimParser(dataDir, apiKey string, download bool, log *slog.Logger) *OmimParser {
	return &OmimParser{
		dataDir:  dataDir,
		apiKey:   apiKey,
		download: download,
		log:      log,
	}
}

// ParseCatalog implements the Parser interface.
func (p *OmimParser) ParseCatalog() (*entities.Catalog, error) {
	return ParseCatalog(p.dataDir, p.apiKey, p.download, p.log)
}
