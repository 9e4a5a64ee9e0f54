// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/citation-engine/pkg/types"
)

func swapDOIBase(t *testing.T, base string) {
	t.Helper()
	orig := doiBase
	doiBase = base
	t.Cleanup(func() { doiBase = orig })
}

func TestVerifyDOI(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"registered", http.StatusFound, false},
		{"redirect landed", http.StatusOK, false},
		{"not registered", http.StatusNotFound, true},
		{"resolver error", http.StatusInternalServerError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodHead {
					t.Errorf("method = %s, want HEAD", r.Method)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()
			swapDOIBase(t, srv.URL+"/")

			client := srv.Client()
			client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			}

			err := VerifyDOI(context.Background(), client, "10.5281/zenodo.7060240", types.ResolutionConfig{})
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifyDOI on HTTP %d: err = %v, wantErr %v", tt.status, err, tt.wantErr)
			}
		})
	}
}

func TestCrossCheck(t *testing.T) {
	record := func() *types.Citation {
		return &types.Citation{
			Title:        "waveformtools",
			DateReleased: "2019-09-16",
			DOI:          "10.1103/PhysRevD.100.064024",
			Authors: []types.Author{
				{GivenNames: "Ada", FamilyNames: "Lovelace"},
			},
		}
	}

	t.Run("agreement", func(t *testing.T) {
		work := &Work{
			Title:   "Waveformtools",
			Year:    2019,
			Authors: []WorkAuthor{{Given: "Ada", Family: "Lovelace"}},
		}
		if got := CrossCheck(record(), work); len(got) != 0 {
			t.Errorf("mismatches = %v, want none", got)
		}
	})

	t.Run("title mismatch", func(t *testing.T) {
		work := &Work{Title: "A different title entirely"}
		got := CrossCheck(record(), work)
		if len(got) != 1 || got[0].Field != "title" {
			t.Errorf("mismatches = %v, want one title mismatch", got)
		}
	})

	t.Run("title comparison ignores punctuation and case", func(t *testing.T) {
		work := &Work{Title: "Waveform Tools!"}
		c := record()
		c.Title = "waveform tools"
		if got := CrossCheck(c, work); len(got) != 0 {
			t.Errorf("mismatches = %v, want none", got)
		}
	})

	t.Run("malformed date-released skips year comparison", func(t *testing.T) {
		// Short or junk dates parse into the string field; they must not
		// crash the cross-check or produce a bogus year mismatch.
		work := &Work{Year: 2019}
		for _, date := range []string{"99", "2019", "soon", "2019-9-16"} {
			c := record()
			c.DateReleased = date
			if got := CrossCheck(c, work); len(got) != 0 {
				t.Errorf("date %q: mismatches = %v, want none", date, got)
			}
		}
	})

	t.Run("year mismatch", func(t *testing.T) {
		work := &Work{Year: 2021}
		got := CrossCheck(record(), work)
		if len(got) != 1 || got[0].Field != "year" || got[0].Record != "2019" || got[0].Registry != "2021" {
			t.Errorf("mismatches = %v, want one year mismatch", got)
		}
	})

	t.Run("registry author absent from record", func(t *testing.T) {
		work := &Work{
			Authors: []WorkAuthor{
				{Given: "Ada", Family: "Lovelace"},
				{Given: "Grace", Family: "Hopper"},
			},
		}
		got := CrossCheck(record(), work)
		if len(got) != 1 || got[0].Field != "authors" || got[0].Registry != "Grace Hopper" {
			t.Errorf("mismatches = %v, want Grace Hopper flagged", got)
		}
	})

	t.Run("preferred citation title wins for its doi", func(t *testing.T) {
		c := record()
		c.PreferredCitation = &types.Reference{
			Type:  "article",
			Title: "Accurate frequency-domain waveform models",
			DOI:   c.DOI,
		}
		work := &Work{Title: "Accurate frequency-domain waveform models"}
		if got := CrossCheck(c, work); len(got) != 0 {
			t.Errorf("mismatches = %v, want none", got)
		}
	})
}

func TestMismatchString(t *testing.T) {
	m := Mismatch{Field: "year", Record: "2019", Registry: "2021"}
	want := `year: record has "2019", registry has "2021"`
	if m.String() != want {
		t.Errorf("String() = %q, want %q", m.String(), want)
	}
}
