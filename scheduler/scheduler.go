// Package scheduler provides automated catalog refresh scheduling and
// staleness monitoring. It runs a daily cron-based re-parse of the OMIM
// exports and coordinates snapshot swaps with the data store using
// dependency injection.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/omimtools/catalog-api/interfaces"
	"github.com/omimtools/catalog-api/logging"
	"github.com/omimtools/catalog-api/validation"
)

// staleAfter is the data age that triggers staleness warnings. OMIM exports
// refresh daily, so anything older than two scheduled runs is suspicious.
const staleAfter = 49 * time.Hour

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles catalog refreshes and staleness monitoring using
// dependency injection.
type Scheduler struct {
	dataStore interfaces.DataStore
	parser    interfaces.Parser
	updateAt  string
	scheduler *gocron.Scheduler
	stop      chan struct{}
}

// NewScheduler creates a new scheduler instance with injected dependencies.
// updateAt is the daily refresh time in HH:MM.
func NewScheduler(dataStore interfaces.DataStore, parser interfaces.Parser, updateAt string) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		parser:    parser,
		updateAt:  updateAt,
		scheduler: gocron.NewScheduler(time.Local),
		stop:      make(chan struct{}),
	}
}

// Start performs the initial catalog load and schedules the daily refresh.
func (s *Scheduler) Start() error {
	if err := s.refreshCatalog(); err != nil {
		logging.Error("Failed to perform initial catalog load", "error", err)
		return fmt.Errorf("initial catalog load failed: %w", err)
	}

	_, err := s.scheduler.Every(1).Days().At(s.updateAt).Do(func() {
		if err := s.refreshCatalog(); err != nil {
			logging.Error("Failed to refresh catalog", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule catalog refresh", "error", err)
		return fmt.Errorf("failed to schedule catalog refresh: %w", err)
	}

	s.scheduler.StartAsync()
	s.startStalenessMonitoring()

	return nil
}

// Stop stops the scheduler and the staleness monitor.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	close(s.stop)
}

// refreshCatalog parses a fresh snapshot and publishes it atomically.
func (s *Scheduler) refreshCatalog() error {
	if !s.dataStore.BeginUpdate() {
		logging.Info("Catalog refresh already in progress, skipping")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info("Starting catalog refresh")
	start := time.Now()

	catalog, err := s.parser.ParseCatalog()
	if err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}

	validator := validation.NewCatalogValidator()
	if err := validator.ValidateCatalog(catalog); err != nil {
		return fmt.Errorf("refusing to publish catalog: %w", err)
	}

	report := validator.ReportDataQuality(catalog)
	if len(report.ReplacementsWithoutTitle) > 0 {
		logging.Warn("Replacement records without a title record",
			"count", len(report.ReplacementsWithoutTitle))
	}
	if len(report.DanglingSuccessors) > 0 {
		logging.Warn("Replacement successors resolving to no title record",
			"count", len(report.DanglingSuccessors))
	}
	if report.EmptySeries > 0 {
		logging.Warn("Phenotypic series without members", "count", report.EmptySeries)
	}
	if report.MorbidWithoutPhenotype > 0 {
		logging.Info("Morbid map entries with unparsable phenotype column",
			"count", report.MorbidWithoutPhenotype)
	}

	s.dataStore.UpdateCatalog(catalog)

	logging.Info("Catalog refresh completed",
		"duration", time.Since(start).String(),
		"titles", len(catalog.Titles))
	return nil
}

// startStalenessMonitoring warns when the snapshot has not been refreshed
// within two scheduled runs.
func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				lastUpdate := s.dataStore.GetLastUpdated()
				if time.Since(lastUpdate) > staleAfter {
					logging.Warn("Catalog has not been refreshed recently",
						"last_update", lastUpdate.Format(time.RFC3339))
				}
			}
		}
	}()
}
