// Package catalogparser downloads the OMIM flat-file exports and normalizes
// them into in-memory lookup maps keyed by 6-digit MIM numbers.
package catalogparser

import (
	"log/slog"
	"regexp"

	"github.com/omimtools/catalog-api/metrics"
)

// Pre-compiled repair patterns. OMIM phenotype columns wrap MIM numbers in
// curly braces or append trailing annotations after a comma.
var (
	bracedMimRegex   = regexp.MustCompile(`^\{(\d{6})\}`)
	trailingMimRegex = regexp.MustCompile(`^(\d{6}),`)
	plainMimRegex    = regexp.MustCompile(`^\d{6}$`)
)

// RepairMimNumber returns a valid 6-digit MIM number extracted from candidate,
// or ok=false when no repair heuristic applies. Valid identifiers pass through
// unchanged. Repair attempts and outcomes are logged at warning level so data
// quality regressions stay visible.
func RepairMimNumber(candidate string, log *slog.Logger) (string, bool) {
	if log == nil {
		log = slog.Default()
	}

	if plainMimRegex.MatchString(candidate) {
		return candidate, true
	}

	if m := bracedMimRegex.FindStringSubmatch(candidate); m != nil {
		log.Warn("Repaired malformed MIM number", "candidate", candidate, "repaired", m[1])
		metrics.MimNumbersRepaired.Inc()
		return m[1], true
	}

	if m := trailingMimRegex.FindStringSubmatch(candidate); m != nil {
		log.Warn("Repaired malformed MIM number", "candidate", candidate, "repaired", m[1])
		metrics.MimNumbersRepaired.Inc()
		return m[1], true
	}

	log.Warn("Failed to repair malformed MIM number", "candidate", candidate)
	metrics.MimNumbersUnrepairable.Inc()
	return "", false
}
