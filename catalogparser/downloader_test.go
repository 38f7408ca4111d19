package catalogparser

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileURL(t *testing.T) {
	if got := fileURL("mim2gene.txt", "secret"); got != "https://omim.org/static/omim/data/mim2gene.txt" {
		t.Errorf("mim2gene.txt URL = %q", got)
	}
	got := fileURL("mimTitles.txt", "secret")
	if !strings.Contains(got, "data.omim.org/downloads/secret/mimTitles.txt") {
		t.Errorf("mimTitles.txt URL = %q", got)
	}
}

func TestFetchRawFileFromCache(t *testing.T) {
	dir := t.TempDir()
	content := "# comment\nAsterisk\t100640\tLABEL\t\t\n"
	if err := os.WriteFile(filepath.Join(dir, "mimTitles.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	lines, err := FetchRawFile(dir, "mimTitles.txt", "", false)
	if err != nil {
		t.Fatalf("FetchRawFile failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[1] != "Asterisk\t100640\tLABEL\t\t" {
		t.Errorf("line = %q", lines[1])
	}
}

func TestFetchRawFileMissing(t *testing.T) {
	if _, err := FetchRawFile(t.TempDir(), "mimTitles.txt", "", false); err == nil {
		t.Fatal("missing file must be a hard error, never a silent fallback")
	}
}

// pointEndpointsAt redirects both download endpoints to a test server and
// restores them when the test finishes.
func pointEndpointsAt(t *testing.T, url string) {
	t.Helper()
	origStatic, origDownload := staticBaseURL, downloadBaseURL
	staticBaseURL, downloadBaseURL = url, url
	t.Cleanup(func() {
		staticBaseURL, downloadBaseURL = origStatic, origDownload
	})
}

func TestDownloadFileWritesTextAndTsv(t *testing.T) {
	body := fileHeaders["mim2gene.txt"] + "\n100640\tgene\t216\tALDH1A1\tENSG00000165092\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer server.Close()
	pointEndpointsAt(t, server.URL)

	dir := t.TempDir()
	if err := downloadFile(dir, "mim2gene.txt", ""); err != nil {
		t.Fatalf("downloadFile: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "mim2gene.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != body {
		t.Error("raw .txt copy must keep the commented header")
	}

	tsv, err := os.ReadFile(filepath.Join(dir, "mim2gene.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(tsv), "MIM Number\t") {
		t.Errorf(".tsv copy header = %q", strings.SplitN(string(tsv), "\n", 2)[0])
	}
}

func TestDownloadFileNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()
	pointEndpointsAt(t, server.URL)

	dir := t.TempDir()
	if err := downloadFile(dir, "mimTitles.txt", "badkey"); err == nil {
		t.Fatal("non-200 response must be a hard error")
	}
	if _, err := os.Stat(filepath.Join(dir, "mimTitles.txt")); !os.IsNotExist(err) {
		t.Error("failed download must not leave a partial file")
	}
}

func TestDownloadFileHTMLErrorPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<!DOCTYPE html>\n<html><body>Please log in</body></html>\n")
	}))
	defer server.Close()
	pointEndpointsAt(t, server.URL)

	dir := t.TempDir()
	if err := downloadFile(dir, "mimTitles.txt", "expiredkey"); err == nil {
		t.Fatal("an HTML page instead of data must be a hard error")
	}
	if _, err := os.Stat(filepath.Join(dir, "mimTitles.txt")); !os.IsNotExist(err) {
		t.Error("HTML error page must not be cached as data")
	}
}

func TestDownloadFileDecodesLatin1(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{'1', '0', '0', '6', '4', '0', '\t', 0xe9, '\n'})
	}))
	defer server.Close()
	pointEndpointsAt(t, server.URL)

	dir := t.TempDir()
	if err := downloadFile(dir, "mimTitles.txt", "key"); err != nil {
		t.Fatalf("downloadFile: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "mimTitles.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "100640\té\n" {
		t.Errorf("decoded content = %q", raw)
	}
}
