package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/omimtools/catalog-api/catalogparser/entities"
	"github.com/omimtools/catalog-api/config"
	"github.com/omimtools/catalog-api/data"
	"github.com/omimtools/catalog-api/health"
)

func newTestServer() *Server {
	cfg := &config.Config{
		Port:           "8080",
		Address:        "127.0.0.1",
		MaxRequestBody: 1 << 20,
		UpdateAt:       "05:00",
	}
	store := data.NewCatalogContainer()
	store.SetServerStartTime(time.Now())
	store.UpdateCatalog(&entities.Catalog{
		Titles: map[string]entities.TitleRecord{
			"100640": {MimNumber: "100640", Type: entities.Gene, PreferredLabel: "ALDH1A1 GENE"},
		},
	})
	checker := health.NewHealthChecker(store, cfg.UpdateAt)
	return NewServer(cfg, store, checker)
}

func TestRoutes(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		path string
		want int
	}{
		{"/entries/100640", http.StatusOK},
		{"/entries/999999", http.StatusNotFound},
		{"/entries/bogus", http.StatusBadRequest},
		{"/genes", http.StatusOK},
		{"/phenotypes", http.StatusOK},
		{"/health", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
}

func TestRecovererCatchesPanics(t *testing.T) {
	srv := newTestServer()
	srv.router.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
