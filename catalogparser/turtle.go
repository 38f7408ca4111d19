package catalogparser

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/omimtools/catalog-api/catalogparser/entities"
)

// Reference patterns scanned against literal-style object lines. The ORPHA
// pattern keeps the C-prefixed numeric shape of the upstream data pipeline;
// see DESIGN.md before trusting Orphanet values extracted with it.
var (
	pubmedRefRegex   = regexp.MustCompile(`.*PMID:(\d+).*`)
	umlsRefRegex     = regexp.MustCompile(`.*UMLS:(C\d+).*`)
	orphanetRefRegex = regexp.MustCompile(`.*ORPHA:(C\d+).*`)
)

// ExtractCrossReferences streams serialized triple lines in a single forward
// pass. A line beginning with the OMIM: namespace prefix sets the sticky
// current MIM number; every following line is scanned for PubMed, UMLS and
// Orphanet codes, which accumulate under that MIM number until the next
// subject line.
func ExtractCrossReferences(lines []string, log *slog.Logger) entities.CrossReferences {
	if log == nil {
		log = slog.Default()
	}

	refs := entities.CrossReferences{
		PubMed:   make(map[string][]string),
		UMLS:     make(map[string][]string),
		Orphanet: make(map[string][]string),
	}
	mimNumber := ""

	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t\r\n")

		if strings.HasPrefix(line, "OMIM:") {
			subject := strings.Fields(line)[0]
			mimNumber = strings.SplitN(subject, ":", 2)[1]
			continue
		}
		if strings.HasPrefix(line, "PMID:") || strings.HasPrefix(line, "UMLS:") || strings.HasPrefix(line, "@prefix") {
			continue
		}

		if m := pubmedRefRegex.FindStringSubmatch(line); m != nil {
			refs.PubMed[mimNumber] = append(refs.PubMed[mimNumber], m[1])
		}
		if m := umlsRefRegex.FindStringSubmatch(line); m != nil {
			refs.UMLS[mimNumber] = append(refs.UMLS[mimNumber], m[1])
		}
		if m := orphanetRefRegex.FindStringSubmatch(line); m != nil {
			refs.Orphanet[mimNumber] = append(refs.Orphanet[mimNumber], m[1])
		}
	}

	return refs
}
