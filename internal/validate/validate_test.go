// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"strings"
	"testing"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// completeRecord returns a record that passes without errors or warnings.
func completeRecord() *types.Citation {
	return &types.Citation{
		CFFVersion: "1.2.0",
		Message:    "If you use this software, please cite it using the metadata from this file.",
		Type:       types.WorkSoftware,
		Title:      "waveformtools",
		Authors: []types.Author{
			{GivenNames: "Ada", FamilyNames: "Lovelace", ORCID: "https://orcid.org/0000-0002-1825-0097"},
		},
		Abstract:       "Frequency-domain waveform model evaluation.",
		Keywords:       []string{"waveforms", "astronomy"},
		License:        "GPL-3.0-or-later",
		Version:        "1.4.2",
		DateReleased:   "2023-05-17",
		DOI:            "10.5281/zenodo.7060240",
		RepositoryCode: "https://github.com/example/waveformtools",
	}
}

func checkRecord(c *types.Citation) Result {
	return Check(c, types.ValidationConfig{})
}

func TestCompleteRecordIsClean(t *testing.T) {
	r := checkRecord(completeRecord())
	if len(r.Diagnostics) != 0 {
		t.Errorf("complete record produced diagnostics: %v", r.Diagnostics)
	}
	if !r.OK(true) {
		t.Error("OK(strict) = false for complete record")
	}
}

func TestRequiredFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*types.Citation)
		wantField string
	}{
		{"missing cff-version", func(c *types.Citation) { c.CFFVersion = "" }, "cff-version"},
		{"missing message", func(c *types.Citation) { c.Message = "" }, "message"},
		{"blank title", func(c *types.Citation) { c.Title = "   " }, "title"},
		{"no authors", func(c *types.Citation) { c.Authors = nil }, "authors"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := completeRecord()
			tt.mutate(c)
			r := checkRecord(c)
			if !hasError(r, tt.wantField) {
				t.Errorf("no error diagnostic on %q, got %v", tt.wantField, r.Diagnostics)
			}
		})
	}
}

func TestVersionField(t *testing.T) {
	c := completeRecord()
	c.CFFVersion = "2.0.0"
	if r := checkRecord(c); !hasError(r, "cff-version") {
		t.Errorf("unknown schema version accepted: %v", r.Diagnostics)
	}

	c = completeRecord()
	c.CFFVersion = "1.1.0"
	r := checkRecord(c)
	if hasError(r, "cff-version") {
		t.Errorf("1.1.0 rejected outright: %v", r.Diagnostics)
	}
	if !hasWarning(r, "cff-version") {
		t.Errorf("superseded schema version not flagged: %v", r.Diagnostics)
	}
}

func TestWorkType(t *testing.T) {
	c := completeRecord()
	c.Type = "poem"
	if r := checkRecord(c); !hasError(r, "type") {
		t.Errorf("invalid work type accepted: %v", r.Diagnostics)
	}

	c = completeRecord()
	c.Type = types.WorkDataset
	if r := checkRecord(c); hasError(r, "type") {
		t.Errorf("dataset rejected: %v", r.Diagnostics)
	}
}

func TestAuthorForms(t *testing.T) {
	tests := []struct {
		name      string
		author    types.Author
		wantField string
	}{
		{
			"mixes person and entity",
			types.Author{FamilyNames: "Lovelace", Name: "The Collaboration"},
			"authors[0]",
		},
		{
			"neither person nor entity",
			types.Author{Email: "someone@example.com"},
			"authors[0]",
		},
		{
			"given names without family",
			types.Author{GivenNames: "Ada"},
			"authors[0].family-names",
		},
		{
			"bad email",
			types.Author{FamilyNames: "Lovelace", Email: "not-an-email"},
			"authors[0].email",
		},
		{
			"bad website",
			types.Author{FamilyNames: "Lovelace", Website: "ftp://example.com/x"},
			"authors[0].website",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := completeRecord()
			c.Authors = []types.Author{tt.author}
			r := checkRecord(c)
			if !hasError(r, tt.wantField) {
				t.Errorf("no error diagnostic on %q, got %v", tt.wantField, r.Diagnostics)
			}
		})
	}
}

func TestDuplicateORCID(t *testing.T) {
	c := completeRecord()
	c.Authors = append(c.Authors, types.Author{
		GivenNames:  "Augusta",
		FamilyNames: "King",
		ORCID:       c.Authors[0].ORCID,
	})
	r := checkRecord(c)
	if !hasWarning(r, "authors[1].orcid") {
		t.Errorf("duplicate ORCID not flagged: %v", r.Diagnostics)
	}
}

func TestDateReleased(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"valid date", "2023-05-17", false},
		{"not a date", "May 17, 2023", true},
		{"month out of range", "2023-13-01", true},
		{"far future", "2199-01-01", true},
		{"empty skips check", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := completeRecord()
			c.DateReleased = tt.date
			r := checkRecord(c)
			if got := hasError(r, "date-released"); got != tt.wantErr {
				t.Errorf("date %q: error = %v, want %v (%v)", tt.date, got, tt.wantErr, r.Diagnostics)
			}
		})
	}
}

func TestLicenseField(t *testing.T) {
	c := completeRecord()
	c.License = "MyCustomLicense"
	if r := checkRecord(c); !hasError(r, "license") {
		t.Errorf("unrecognized license accepted: %v", r.Diagnostics)
	}

	c = completeRecord()
	c.License = "GPL-3.0"
	r := checkRecord(c)
	if hasError(r, "license") {
		t.Errorf("retired alias rejected outright: %v", r.Diagnostics)
	}
	if !hasWarning(r, "license") {
		t.Errorf("retired alias not flagged: %v", r.Diagnostics)
	}

	c = completeRecord()
	c.License = "Apache-2.0 OR GPL-3.0-or-later"
	if r := checkRecord(c); hasError(r, "license") {
		t.Errorf("valid expression rejected: %v", r.Diagnostics)
	}
}

func TestURLFields(t *testing.T) {
	c := completeRecord()
	c.RepositoryCode = "git@github.com:example/waveformtools.git"
	if r := checkRecord(c); !hasError(r, "repository-code") {
		t.Errorf("ssh remote accepted as URL: %v", r.Diagnostics)
	}
}

func TestKeywords(t *testing.T) {
	c := completeRecord()
	c.Keywords = []string{"waveforms", "  ", "Waveforms"}
	r := checkRecord(c)
	if !hasError(r, "keywords[1]") {
		t.Errorf("empty keyword not flagged: %v", r.Diagnostics)
	}
	if !hasWarning(r, "keywords[2]") {
		t.Errorf("case-insensitive duplicate not flagged: %v", r.Diagnostics)
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		name      string
		id        types.Identifier
		wantField string
	}{
		{"bad type", types.Identifier{Type: "isbn", Value: "123"}, "identifiers[0].type"},
		{"empty value", types.Identifier{Type: "doi", Value: ""}, "identifiers[0].value"},
		{"bad doi", types.Identifier{Type: "doi", Value: "not-a-doi"}, "identifiers[0].value"},
		{"bad url", types.Identifier{Type: "url", Value: "nope"}, "identifiers[0].value"},
		{"bad swh", types.Identifier{Type: "swh", Value: "swh:1:rel:xyz"}, "identifiers[0].value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := completeRecord()
			c.Identifiers = []types.Identifier{tt.id}
			r := checkRecord(c)
			if !hasError(r, tt.wantField) {
				t.Errorf("no error diagnostic on %q, got %v", tt.wantField, r.Diagnostics)
			}
		})
	}

	c := completeRecord()
	c.Identifiers = []types.Identifier{
		{Type: "doi", Value: "10.5281/zenodo.7060240", Description: "this version"},
		{Type: "swh", Value: "swh:1:rel:22ece559cc7cc2364edc5e5593d63ae8bd229f9f"},
		{Type: "other", Value: "arXiv:2207.06910"},
	}
	if r := checkRecord(c); len(r.Errors()) != 0 {
		t.Errorf("valid identifiers rejected: %v", r.Errors())
	}
}

func TestReferences(t *testing.T) {
	c := completeRecord()
	c.PreferredCitation = &types.Reference{
		Type:  "article",
		Title: "Accurate frequency-domain waveform models",
		Year:  2019,
	}
	if r := checkRecord(c); len(r.Errors()) != 0 {
		t.Errorf("valid preferred-citation rejected: %v", r.Errors())
	}

	c.PreferredCitation.Type = "webinar"
	if r := checkRecord(c); !hasError(r, "preferred-citation.type") {
		t.Errorf("unknown reference type accepted")
	}

	c = completeRecord()
	c.References = []types.Reference{{Type: "article", Title: "", Year: 999}}
	r := checkRecord(c)
	if !hasError(r, "references[0].title") {
		t.Errorf("untitled reference accepted: %v", r.Diagnostics)
	}
	if !hasError(r, "references[0].year") {
		t.Errorf("implausible year accepted: %v", r.Diagnostics)
	}
}

func TestRecommendedFieldWarnings(t *testing.T) {
	c := &types.Citation{
		CFFVersion: "1.2.0",
		Message:    "Please cite this software.",
		Title:      "waveformtools",
		Authors:    []types.Author{{FamilyNames: "Lovelace"}},
	}
	r := checkRecord(c)
	if len(r.Errors()) != 0 {
		t.Fatalf("minimal record has errors: %v", r.Errors())
	}
	for _, field := range []string{"abstract", "keywords", "license", "version", "date-released", "doi", "repository-code"} {
		if !hasWarning(r, field) {
			t.Errorf("missing recommended field %q not flagged", field)
		}
	}
	if r.OK(false) != true {
		t.Error("OK(false) = false for warning-only record")
	}
	if r.OK(true) != false {
		t.Error("OK(true) = true for warning-only record")
	}
}

func TestIgnoreWarnings(t *testing.T) {
	c := completeRecord()
	c.Abstract = ""
	r := Check(c, types.ValidationConfig{IgnoreWarnings: true})
	if len(r.Warnings()) != 0 {
		t.Errorf("IgnoreWarnings left warnings: %v", r.Warnings())
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{SeverityError, "authors[0].orcid", "malformed ORCID"}
	want := "error: authors[0].orcid: malformed ORCID"
	if d.String() != want {
		t.Errorf("String() = %q, want %q", d.String(), want)
	}
}

func hasError(r Result, field string) bool {
	return hasDiag(r.Errors(), field)
}

func hasWarning(r Result, field string) bool {
	return hasDiag(r.Warnings(), field)
}

func hasDiag(diags []Diagnostic, field string) bool {
	for _, d := range diags {
		if strings.HasPrefix(d.Field, field) {
			return true
		}
	}
	return false
}
