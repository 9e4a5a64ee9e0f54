// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// sampleCitation returns a software record with a preferred-citation,
// shared across the rendering tests.
func sampleCitation() *types.Citation {
	return &types.Citation{
		CFFVersion: "1.2.0",
		Message:    "If you use this software, please cite our article.",
		Type:       types.WorkSoftware,
		Title:      "waveformtools",
		Authors: []types.Author{
			{GivenNames: "Ada", FamilyNames: "Lovelace", ORCID: "https://orcid.org/0000-0002-1825-0097"},
			{GivenNames: "Grace Brewster", FamilyNames: "Hopper"},
		},
		License:        "GPL-3.0-or-later",
		Version:        "1.4.2",
		DateReleased:   "2023-05-17",
		DOI:            "10.5281/zenodo.7060240",
		RepositoryCode: "https://github.com/example/waveformtools",
		PreferredCitation: &types.Reference{
			Type:    "article",
			Title:   "Accurate frequency-domain waveform models",
			Authors: []types.Author{{GivenNames: "Ada", FamilyNames: "Lovelace"}},
			Journal: "Physical Review D",
			Volume:  100,
			Issue:   6,
			Pages:   "064024",
			Year:    2019,
			DOI:     "10.1103/PhysRevD.100.064024",
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csl", FormatCSL, false},
		{"CSL-JSON", FormatCSLJSON, false},
		{"bibtex", FormatBibTeX, false},
		{"text", FormatText, false},
		{"ris", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = (%q, %v), want (%q, wantErr %v)", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestRenderBibTeX(t *testing.T) {
	g := goldie.New(t)

	var buf bytes.Buffer
	if err := RenderBibTeX(sampleCitation(), false, &buf); err != nil {
		t.Fatalf("RenderBibTeX: %v", err)
	}
	g.Assert(t, "bibtex_software", buf.Bytes())

	buf.Reset()
	if err := RenderBibTeX(sampleCitation(), true, &buf); err != nil {
		t.Fatalf("RenderBibTeX preferred: %v", err)
	}
	g.Assert(t, "bibtex_preferred", buf.Bytes())
}

func TestRenderBibTeXDataset(t *testing.T) {
	c := sampleCitation()
	c.Type = types.WorkDataset

	var buf bytes.Buffer
	if err := RenderBibTeX(c, false, &buf); err != nil {
		t.Fatalf("RenderBibTeX: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("@misc{")) {
		t.Errorf("dataset entry = %q, want @misc", firstLine(buf.Bytes()))
	}
}

func TestBibTeXEscaping(t *testing.T) {
	c := sampleCitation()
	c.Title = "tools & models_v2"

	var buf bytes.Buffer
	if err := RenderBibTeX(c, false, &buf); err != nil {
		t.Fatalf("RenderBibTeX: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`{tools \& models\_v2}`)) {
		t.Errorf("special characters not escaped:\n%s", buf.String())
	}
}

func TestRenderText(t *testing.T) {
	g := goldie.New(t)

	var buf bytes.Buffer
	if err := RenderText(sampleCitation(), false, &buf); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	g.Assert(t, "text_software", buf.Bytes())

	buf.Reset()
	if err := RenderText(sampleCitation(), true, &buf); err != nil {
		t.Fatalf("RenderText preferred: %v", err)
	}
	g.Assert(t, "text_preferred", buf.Bytes())
}

func TestToCSLItem(t *testing.T) {
	item := toCSLItem(sampleCitation(), false)

	if item.ID != "lovelace2023" {
		t.Errorf("ID = %q, want lovelace2023", item.ID)
	}
	if item.Type != "software" {
		t.Errorf("Type = %q, want software", item.Type)
	}
	if item.DOI != "10.5281/zenodo.7060240" {
		t.Errorf("DOI = %q", item.DOI)
	}
	if item.URL != "https://github.com/example/waveformtools" {
		t.Errorf("URL = %q", item.URL)
	}
	if item.Version != "1.4.2" {
		t.Errorf("Version = %q", item.Version)
	}
	if len(item.Author) != 2 || item.Author[0].Family != "Lovelace" || item.Author[0].Given != "Ada" {
		t.Errorf("Author = %+v", item.Author)
	}
	if item.Issued == nil || len(item.Issued.DateParts) != 1 {
		t.Fatalf("Issued = %+v, want one date", item.Issued)
	}
	got := item.Issued.DateParts[0]
	if len(got) != 3 || got[0] != 2023 || got[1] != 5 || got[2] != 17 {
		t.Errorf("date-parts = %v, want [2023 5 17]", got)
	}
}

func TestToCSLItemPreferred(t *testing.T) {
	item := toCSLItem(sampleCitation(), true)

	if item.ID != "lovelace2019" {
		t.Errorf("ID = %q, want lovelace2019", item.ID)
	}
	if item.Type != "article-journal" {
		t.Errorf("Type = %q, want article-journal", item.Type)
	}
	if item.Container != "Physical Review D" || item.Volume != 100 || item.Issue != 6 || item.Page != "064024" {
		t.Errorf("journal fields = %q %d %d %q", item.Container, item.Volume, item.Issue, item.Page)
	}
	if item.Issued == nil || item.Issued.DateParts[0][0] != 2019 {
		t.Errorf("Issued = %+v, want year 2019", item.Issued)
	}
	if item.Version != "" {
		t.Errorf("preferred item carries software version %q", item.Version)
	}
}

func TestToCSLName(t *testing.T) {
	n := toCSLName(types.Author{Name: "The LIGO Scientific Collaboration"})
	if n.Literal != "The LIGO Scientific Collaboration" || n.Family != "" {
		t.Errorf("entity name = %+v", n)
	}

	n = toCSLName(types.Author{GivenNames: "Ludwig", NameParticle: "van", FamilyNames: "Beethoven"})
	if n.Family != "van Beethoven" || n.Given != "Ludwig" {
		t.Errorf("particle name = %+v", n)
	}
}

func TestCitationKey(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Citation)
		want   string
	}{
		{"author and year", func(c *types.Citation) {}, "lovelace2023"},
		{"no date", func(c *types.Citation) { c.DateReleased = "" }, "lovelace"},
		{
			"entity author",
			func(c *types.Citation) {
				c.Authors = []types.Author{{Name: "The LIGO Scientific Collaboration"}}
			},
			"theligoscientificcollaboration2023",
		},
		{
			"title fallback",
			func(c *types.Citation) { c.Authors = nil },
			"waveformtools2023",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sampleCitation()
			tt.mutate(c)
			if got := CitationKey(c, false); got != tt.want {
				t.Errorf("CitationKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderNoPreferredCitation(t *testing.T) {
	c := sampleCitation()
	c.PreferredCitation = nil

	var buf bytes.Buffer
	if err := Render(c, FormatBibTeX, true, &buf); err == nil {
		t.Error("Render with usePreferred and no preferred-citation succeeded")
	}
}

func TestRenderCSLJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(sampleCitation(), FormatCSLJSON, false, &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("[\n")) {
		t.Errorf("CSL-JSON output is not an array:\n%s", buf.String())
	}
	for _, want := range []string{`"id": "lovelace2023"`, `"DOI": "10.5281/zenodo.7060240"`} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("CSL-JSON output missing %s:\n%s", want, buf.String())
		}
	}
}

func firstLine(b []byte) string {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
