// Package health provides health checking functionality for the catalog API.
package health

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/omimtools/catalog-api/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface.
type HealthCheckerImpl struct {
	dataStore interfaces.DataStore
	updateAt  string // daily refresh time, HH:MM
}

// NewHealthChecker creates a new health checker with injected dependencies.
func NewHealthChecker(dataStore interfaces.DataStore, updateAt string) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		dataStore: dataStore,
		updateAt:  updateAt,
	}
}

// HealthCheck returns the data-driven health status for the /health
// endpoint. The OMIM exports refresh once a day, so thresholds are in
// multiples of the refresh interval.
func (h *HealthCheckerImpl) HealthCheck() (string, map[string]any, int) {
	catalog := h.dataStore.GetCatalog()
	lastUpdate := h.dataStore.GetLastUpdated()
	isUpdating := h.dataStore.IsUpdating()

	dataAge := time.Since(lastUpdate)

	var status string
	var httpStatus int
	switch {
	case len(catalog.Titles) == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > 72*time.Hour:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > 48*time.Hour:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data := map[string]any{
		"last_update":    lastUpdate.Format(time.RFC3339),
		"next_update":    h.CalculateNextUpdate().Format(time.RFC3339),
		"data_age_hours": math.Round(dataAge.Hours()*10) / 10,
		"titles":         len(catalog.Titles),
		"genes":          len(catalog.GeneMap),
		"phenotypes":     len(catalog.PhenotypeMap),
		"series":         len(catalog.Series),
		"is_updating":    isUpdating,
	}

	return status, data, httpStatus
}

// CalculateNextUpdate returns the next scheduled refresh time.
func (h *HealthCheckerImpl) CalculateNextUpdate() time.Time {
	now := time.Now()

	hour, minute := parseUpdateAt(h.updateAt)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// parseUpdateAt splits an HH:MM string, falling back to 05:00 for anything
// malformed. Config validation rejects bad values before they get here.
func parseUpdateAt(updateAt string) (int, int) {
	parts := strings.SplitN(updateAt, ":", 2)
	if len(parts) != 2 {
		return 5, 0
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 5, 0
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 5, 0
	}
	return hour, minute
}
