// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks CFF records against the schema and the
// identifier grammars (DOI, ORCID, SPDX, Software Heritage).
// Implements: prd002-validation (R1-R5);
//
//	docs/ARCHITECTURE § Validation.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// Severity classifies a diagnostic.
type Severity string

const (
	// SeverityError marks a schema violation; the record is invalid.
	SeverityError Severity = "error"

	// SeverityWarning marks a valid but incomplete or dated record.
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single validation finding tied to a field path.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Field    string   `json:"field" yaml:"field"`
	Message  string   `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Field, d.Message)
}

// Result holds all diagnostics for one record.
type Result struct {
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// Errors returns the error-severity diagnostics.
func (r Result) Errors() []Diagnostic {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity diagnostics.
func (r Result) Warnings() []Diagnostic {
	return r.filter(SeverityWarning)
}

func (r Result) filter(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// OK reports whether the record passed: no errors, and no warnings
// when strict is set.
func (r Result) OK(strict bool) bool {
	if len(r.Errors()) > 0 {
		return false
	}
	return !strict || len(r.Warnings()) == 0
}

// knownVersions lists the CFF schema versions the engine understands (R2.2).
var knownVersions = map[string]bool{
	"1.0.3": true,
	"1.1.0": true,
	"1.2.0": true,
}

// currentVersion is the schema version new records should declare.
const currentVersion = "1.2.0"

// emailPattern is a light format check, not RFC 5322.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// swhPattern matches core Software Heritage identifiers:
// "swh:1:rel:22ece559cc7cc2364edc5e5593d63ae8bd229f9f".
var swhPattern = regexp.MustCompile(`^swh:1:(snp|rel|rev|dir|cnt):[0-9a-f]{40}$`)

// identifierTypes is the closed vocabulary for identifiers[].type (R2.5).
var identifierTypes = map[string]bool{
	"doi": true, "url": true, "swh": true, "other": true,
}

// Check validates the record and returns all diagnostics. It touches
// neither the network nor the filesystem; cross-registry checks live in
// the resolve stage (R1.1).
func Check(c *types.Citation, cfg types.ValidationConfig) Result {
	v := &checker{}

	v.required(c)
	v.versionField(c)
	v.typeField(c)
	v.authors("authors", c.Authors, true)
	v.authors("contact", c.Contact, false)
	v.doiField("doi", c.DOI, false)
	v.dateReleased(c.DateReleased)
	v.license(c)
	v.urlField("url", c.URL)
	v.urlField("repository-code", c.RepositoryCode)
	v.urlField("repository-artifact", c.RepositoryArtifact)
	v.urlField("license-url", c.LicenseURL)
	v.keywords(c.Keywords)
	v.identifiers(c.Identifiers)
	v.reference("preferred-citation", c.PreferredCitation)
	for i := range c.References {
		v.reference(fmt.Sprintf("references[%d]", i), &c.References[i])
	}
	v.recommended(c)

	r := Result{Diagnostics: v.diags}
	if cfg.IgnoreWarnings {
		r.Diagnostics = r.Errors()
	}
	return r
}

// checker accumulates diagnostics across rule functions.
type checker struct {
	diags []Diagnostic
}

func (v *checker) errorf(field, format string, args ...any) {
	v.diags = append(v.diags, Diagnostic{SeverityError, field, fmt.Sprintf(format, args...)})
}

func (v *checker) warnf(field, format string, args ...any) {
	v.diags = append(v.diags, Diagnostic{SeverityWarning, field, fmt.Sprintf(format, args...)})
}

// required checks the fields every CFF record must carry (R2.1).
func (v *checker) required(c *types.Citation) {
	if c.CFFVersion == "" {
		v.errorf("cff-version", "required field is missing")
	}
	if strings.TrimSpace(c.Message) == "" {
		v.errorf("message", "required field is missing")
	} else if len(strings.Fields(c.Message)) < 2 {
		v.warnf("message", "message %q is too short to tell citers anything", c.Message)
	}
	if strings.TrimSpace(c.Title) == "" {
		v.errorf("title", "required field is missing")
	}
	if len(c.Authors) == 0 {
		v.errorf("authors", "at least one author is required")
	}
}

func (v *checker) versionField(c *types.Citation) {
	if c.CFFVersion == "" {
		return
	}
	if !knownVersions[c.CFFVersion] {
		v.errorf("cff-version", "unknown schema version %q (known: 1.0.3, 1.1.0, 1.2.0)", c.CFFVersion)
		return
	}
	if c.CFFVersion != currentVersion {
		v.warnf("cff-version", "schema version %s is superseded by %s", c.CFFVersion, currentVersion)
	}
}

func (v *checker) typeField(c *types.Citation) {
	switch c.Type {
	case "", types.WorkSoftware, types.WorkDataset:
	default:
		v.errorf("type", "invalid work type %q (software or dataset)", c.Type)
	}
}

// authors validates an author list. When requireForm is set, each entry
// must commit to person or entity form (R2.3).
func (v *checker) authors(field string, authors []types.Author, requireForm bool) {
	seenORCID := make(map[string]int)
	for i, a := range authors {
		path := fmt.Sprintf("%s[%d]", field, i)

		person := a.FamilyNames != "" || a.GivenNames != ""
		entity := a.Name != ""
		switch {
		case person && entity:
			v.errorf(path, "author mixes person fields (family-names) with entity name")
		case !person && !entity && requireForm:
			v.errorf(path, "author needs family-names (person) or name (entity)")
		case person && a.FamilyNames == "":
			v.errorf(path+".family-names", "person author is missing family-names")
		}

		if a.Email != "" && !emailPattern.MatchString(a.Email) {
			v.errorf(path+".email", "malformed email address %q", a.Email)
		}
		if a.ORCID != "" {
			if err := CheckORCID(a.ORCID); err != nil {
				v.errorf(path+".orcid", "%v", err)
			} else if prev, dup := seenORCID[a.ORCID]; dup {
				v.warnf(path+".orcid", "same ORCID as %s[%d]", field, prev)
			} else {
				seenORCID[a.ORCID] = i
			}
		}
		if a.Website != "" {
			v.checkURL(path+".website", a.Website)
		}
	}
}

func (v *checker) doiField(field, doi string, required bool) {
	if doi == "" {
		if required {
			v.errorf(field, "required field is missing")
		}
		return
	}
	if err := CheckDOI(doi); err != nil {
		v.errorf(field, "%v", err)
	}
}

func (v *checker) dateReleased(s string) {
	if s == "" {
		return
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		v.errorf("date-released", "not a YYYY-MM-DD date: %q", s)
		return
	}
	if t.After(time.Now().AddDate(0, 0, 1)) {
		v.errorf("date-released", "release date %s is in the future", s)
	}
}

func (v *checker) license(c *types.Citation) {
	if c.License == "" {
		return
	}
	if unknown := UnknownLicenseIDs(c.License); len(unknown) > 0 {
		v.errorf("license", "unrecognized SPDX identifier %s", strings.Join(unknown, ", "))
		return
	}
	if repl := LicenseReplacement(c.License); repl != "" {
		v.warnf("license", "SPDX retired %q; use %q", c.License, repl)
	}
}

func (v *checker) urlField(field, raw string) {
	if raw == "" {
		return
	}
	v.checkURL(field, raw)
}

func (v *checker) checkURL(field, raw string) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		v.errorf(field, "not an http(s) URL: %q", raw)
	}
}

func (v *checker) keywords(keywords []string) {
	seen := make(map[string]int)
	for i, k := range keywords {
		path := fmt.Sprintf("keywords[%d]", i)
		if strings.TrimSpace(k) == "" {
			v.errorf(path, "empty keyword")
			continue
		}
		key := strings.ToLower(strings.TrimSpace(k))
		if prev, dup := seen[key]; dup {
			v.warnf(path, "duplicate of keywords[%d]", prev)
		} else {
			seen[key] = i
		}
	}
}

func (v *checker) identifiers(ids []types.Identifier) {
	for i, id := range ids {
		path := fmt.Sprintf("identifiers[%d]", i)
		if !identifierTypes[id.Type] {
			v.errorf(path+".type", "invalid identifier type %q (doi, url, swh, other)", id.Type)
			continue
		}
		if id.Value == "" {
			v.errorf(path+".value", "identifier value is empty")
			continue
		}
		switch id.Type {
		case "doi":
			if err := CheckDOI(id.Value); err != nil {
				v.errorf(path+".value", "%v", err)
			}
		case "url":
			v.checkURL(path+".value", id.Value)
		case "swh":
			if !swhPattern.MatchString(id.Value) {
				v.errorf(path+".value", "not a Software Heritage identifier: %q", id.Value)
			}
		}
	}
}

func (v *checker) reference(field string, ref *types.Reference) {
	if ref == nil {
		return
	}
	if ref.Type == "" {
		v.errorf(field+".type", "required field is missing")
	} else if !referenceTypes[ref.Type] {
		v.errorf(field+".type", "unknown reference type %q", ref.Type)
	}
	if strings.TrimSpace(ref.Title) == "" {
		v.errorf(field+".title", "required field is missing")
	}
	v.authors(field+".authors", ref.Authors, false)
	v.doiField(field+".doi", ref.DOI, false)
	if ref.Year != 0 && (ref.Year < 1000 || ref.Year > time.Now().Year()+1) {
		v.errorf(field+".year", "implausible year %d", ref.Year)
	}
	if ref.URL != "" {
		v.checkURL(field+".url", ref.URL)
	}
}

// recommended flags fields a complete record should carry (R4.1-R4.3).
// Missing ones are warnings: the record is still valid.
func (v *checker) recommended(c *types.Citation) {
	if c.Abstract == "" {
		v.warnf("abstract", "recommended field is missing")
	}
	if len(c.Keywords) == 0 {
		v.warnf("keywords", "recommended field is missing")
	}
	if c.License == "" && c.LicenseURL == "" {
		v.warnf("license", "recommended field is missing")
	}
	if c.Version == "" {
		v.warnf("version", "recommended field is missing")
	}
	if c.DateReleased == "" {
		v.warnf("date-released", "recommended field is missing")
	}
	if c.DOI == "" && len(c.Identifiers) == 0 {
		v.warnf("doi", "no persistent identifier (doi or identifiers)")
	}
	if c.RepositoryCode == "" {
		v.warnf("repository-code", "recommended field is missing")
	}
}
