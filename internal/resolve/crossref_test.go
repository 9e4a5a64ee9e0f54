// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/citation-engine/pkg/types"
)

const crossrefBody = `{
	"message": {
		"title": ["Accurate frequency-domain waveform models"],
		"author": [
			{"given": "Ada", "family": "Lovelace"},
			{"given": "Grace", "family": "Hopper"}
		],
		"issued": {"date-parts": [[2019, 9, 16]]}
	}
}`

// swapCrossrefBase points the Crossref client at a test server for the
// duration of the test.
func swapCrossrefBase(t *testing.T, base string) {
	t.Helper()
	orig := crossrefAPIBase
	crossrefAPIBase = base
	t.Cleanup(func() { crossrefAPIBase = orig })
}

func TestFetchWork(t *testing.T) {
	var gotPath, gotMailto, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotMailto = r.URL.Query().Get("mailto")
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, crossrefBody)
	}))
	defer srv.Close()
	swapCrossrefBase(t, srv.URL+"/works/")

	cfg := types.ResolutionConfig{Mailto: "ops@example.com"}
	cfg.UserAgent = "citation-engine/test"

	work, err := FetchWork(context.Background(), srv.Client(), "10.1103/PhysRevD.100.064024", cfg)
	if err != nil {
		t.Fatalf("FetchWork: %v", err)
	}
	if work == nil {
		t.Fatal("FetchWork returned nil work")
	}
	if work.Title != "Accurate frequency-domain waveform models" {
		t.Errorf("Title = %q", work.Title)
	}
	if work.Year != 2019 {
		t.Errorf("Year = %d, want 2019", work.Year)
	}
	if len(work.Authors) != 2 || work.Authors[0].Family != "Lovelace" || work.Authors[1].Given != "Grace" {
		t.Errorf("Authors = %+v", work.Authors)
	}

	if gotPath != "/works/10.1103%2FPhysRevD.100.064024" {
		t.Errorf("request path = %q, DOI should be path-escaped", gotPath)
	}
	if gotMailto != "ops@example.com" {
		t.Errorf("mailto = %q", gotMailto)
	}
	if gotUA != "citation-engine/test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestFetchWorkNotInCrossref(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()
	swapCrossrefBase(t, srv.URL+"/works/")

	// DataCite DOIs are registered but absent from Crossref: not an error.
	work, err := FetchWork(context.Background(), srv.Client(), "10.5281/zenodo.7060240", types.ResolutionConfig{})
	if err != nil {
		t.Fatalf("FetchWork: %v", err)
	}
	if work != nil {
		t.Errorf("work = %+v, want nil for 404", work)
	}
}

func TestFetchWorkServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	swapCrossrefBase(t, srv.URL+"/works/")

	_, err := FetchWork(context.Background(), srv.Client(), "10.5281/zenodo.7060240", types.ResolutionConfig{})
	if err == nil {
		t.Fatal("FetchWork on HTTP 502 succeeded")
	}
}
