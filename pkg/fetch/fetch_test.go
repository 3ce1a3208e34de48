package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"lobbyview/pkg/catalog"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestLocateAcceptedNames(t *testing.T) {
	for _, name := range AcceptedReportNames {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, name), []byte("lob_id\n"), 0o644); err != nil {
				t.Fatal(err)
			}

			f := New(discardLogger())
			path, ok := f.Locate(dir)
			if !ok {
				t.Fatalf("Locate should find %s", name)
			}
			if filepath.Base(path) != name {
				t.Errorf("got %s, want %s", path, name)
			}
		})
	}
}

func TestLocateIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	// A plausible name that is not on the accepted list.
	if err := os.WriteFile(filepath.Join(dir, "lobbyview-reports.csv"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if path, ok := New(discardLogger()).Locate(dir); ok {
		t.Errorf("Locate should only match enumerated names, found %s", path)
	}
}

func TestResolveLocalFileSkipsNetwork(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "reports.csv"), []byte("lob_id\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cat := catalog.New([]catalog.Dataset{{Name: "reports", URL: srv.URL + "/reports.csv"}})
	res := New(discardLogger(), WithOutput(io.Discard)).Resolve(dir, cat)

	if !res.OK() || res.Reason != FoundLocal {
		t.Fatalf("expected a local hit, got %+v", res)
	}
	if hits.Load() != 0 {
		t.Errorf("Resolve made %d network calls for a local file", hits.Load())
	}
}

func TestResolveRemote404DoesNotRaise(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	var guidance bytes.Buffer
	cat := catalog.New([]catalog.Dataset{{Name: "reports", URL: srv.URL + "/reports.csv"}})
	res := New(discardLogger(), WithOutput(&guidance)).Resolve(dir, cat)

	if res.OK() {
		t.Fatalf("expected failure, got %+v", res)
	}
	if res.Reason != RemoteUnavailable || res.Err == nil {
		t.Errorf("expected RemoteUnavailable with an error, got %+v", res)
	}
	if !strings.Contains(guidance.String(), "MANUAL DOWNLOAD INSTRUCTIONS") {
		t.Error("guidance text should be printed on failure")
	}
	if _, err := os.Stat(filepath.Join(dir, "lobbyview_reports.csv")); !os.IsNotExist(err) {
		t.Error("a failed download should leave no partial file")
	}
}

func TestResolveDownloads(t *testing.T) {
	const body = "lob_id,filing_year\nL1,2020\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cat := catalog.New([]catalog.Dataset{{Name: "reports", URL: srv.URL + "/reports.csv"}})
	res := New(discardLogger(), WithOutput(io.Discard)).Resolve(dir, cat)

	if !res.OK() || res.Reason != Downloaded {
		t.Fatalf("expected a download, got %+v", res)
	}
	got, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("failed to read downloaded file: %v", err)
	}
	if string(got) != body {
		t.Errorf("downloaded content mismatch: %q", got)
	}
}

func TestFetchCreatesParentDirs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "data")
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "nested", "deeper", "out.csv")
	if err := New(discardLogger()).Fetch(context.Background(), srv.URL, dest); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("expected file at %s: %v", dest, err)
	}
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "bad") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		io.WriteString(w, "ok")
	}))
	defer srv.Close()

	cat := catalog.New([]catalog.Dataset{
		{Name: "bad", URL: srv.URL + "/bad.csv"},
		{Name: "good", URL: srv.URL + "/good.csv"},
		{Name: "also_good", URL: srv.URL + "/also.csv"},
	})

	dir := t.TempDir()
	got := New(discardLogger()).FetchAll(cat, dir)

	if len(got) != 2 {
		t.Fatalf("expected 2 successes, got %d: %v", len(got), got)
	}
	if _, ok := got["bad"]; ok {
		t.Error("failed dataset must not appear in the result")
	}
	for name, path := range got {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("dataset %s missing at %s: %v", name, path, err)
		}
	}
}
