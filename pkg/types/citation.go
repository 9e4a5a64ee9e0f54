// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// WorkType classifies the cited work. The CFF schema allows software
// and dataset at the top level.
type WorkType string

const (
	WorkSoftware WorkType = "software"
	WorkDataset  WorkType = "dataset"
)

// Citation is a Citation File Format (CFF) record as read from a
// CITATION.cff document. Field names and nesting follow the CFF 1.2.0
// schema so that round-tripping through YAML preserves meaning.
// Per prd001-schema R2.1.
type Citation struct {
	// CFFVersion is the schema version the record declares (e.g. "1.2.0").
	CFFVersion string `json:"cff_version" yaml:"cff-version"`

	// Message tells readers how the authors want the work cited.
	Message string `json:"message" yaml:"message"`

	// Type is the kind of work being cited: software or dataset.
	Type WorkType `json:"type,omitempty" yaml:"type,omitempty"`

	// Title is the name of the cited work.
	Title string `json:"title" yaml:"title"`

	// Authors lists the people and entities that created the work.
	Authors []Author `json:"authors" yaml:"authors"`

	// Contact lists who to contact about the work.
	Contact []Author `json:"contact,omitempty" yaml:"contact,omitempty"`

	// Abstract is a short description of the work.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Keywords describe the work, in author-chosen order.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// License is an SPDX license identifier (e.g. "GPL-3.0-or-later").
	License string `json:"license,omitempty" yaml:"license,omitempty"`

	// LicenseURL points at the license text when License alone is not enough.
	LicenseURL string `json:"license_url,omitempty" yaml:"license-url,omitempty"`

	// Version is the release the record describes.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// DateReleased is the release date in YYYY-MM-DD form.
	DateReleased string `json:"date_released,omitempty" yaml:"date-released,omitempty"`

	// DOI is the Digital Object Identifier of the release (e.g. "10.5281/zenodo.1234").
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Identifiers lists further persistent identifiers for the work.
	Identifiers []Identifier `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`

	// RepositoryCode is the URL of the source code repository.
	RepositoryCode string `json:"repository_code,omitempty" yaml:"repository-code,omitempty"`

	// RepositoryArtifact is the URL of the released artifact (package registry entry).
	RepositoryArtifact string `json:"repository_artifact,omitempty" yaml:"repository-artifact,omitempty"`

	// URL is the landing page of the work.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Commit is the revision the record describes (hash or tag).
	Commit string `json:"commit,omitempty" yaml:"commit,omitempty"`

	// PreferredCitation, when set, asks citers to cite another work
	// (typically a paper) instead of the software itself.
	PreferredCitation *Reference `json:"preferred_citation,omitempty" yaml:"preferred-citation,omitempty"`

	// References lists works this work builds on.
	References []Reference `json:"references,omitempty" yaml:"references,omitempty"`
}

// Author is a person or an entity. A person carries GivenNames and
// FamilyNames; an entity carries Name. The two forms are mutually
// exclusive in a valid record.
type Author struct {
	// GivenNames are the author's given names (person form).
	GivenNames string `json:"given_names,omitempty" yaml:"given-names,omitempty"`

	// FamilyNames are the author's family names (person form).
	FamilyNames string `json:"family_names,omitempty" yaml:"family-names,omitempty"`

	// NameParticle is a nobiliary particle such as "van" or "de".
	NameParticle string `json:"name_particle,omitempty" yaml:"name-particle,omitempty"`

	// NameSuffix is a generational suffix such as "Jr." or "III".
	NameSuffix string `json:"name_suffix,omitempty" yaml:"name-suffix,omitempty"`

	// Name is the entity name (entity form, e.g. a research collaboration).
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Email is a contact address.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Affiliation is the author's institution.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// ORCID is the author's ORCID in URL form (https://orcid.org/XXXX-XXXX-XXXX-XXXX).
	ORCID string `json:"orcid,omitempty" yaml:"orcid,omitempty"`

	// Website is the author's home page.
	Website string `json:"website,omitempty" yaml:"website,omitempty"`

	// Alias is a username or handle.
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// IsEntity reports whether the author uses the entity form.
func (a Author) IsEntity() bool {
	return a.Name != "" && a.FamilyNames == "" && a.GivenNames == ""
}

// DisplayName returns the author's name for human-readable output:
// "Given Particle Family Suffix" for persons, Name for entities.
func (a Author) DisplayName() string {
	if a.IsEntity() {
		return a.Name
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{a.GivenNames, a.NameParticle, a.FamilyNames, a.NameSuffix} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Identifier is a persistent identifier attached to the work.
type Identifier struct {
	// Type is one of doi, url, swh, or other.
	Type string `json:"type" yaml:"type"`

	// Value is the identifier itself.
	Value string `json:"value" yaml:"value"`

	// Description says what the identifier points at (e.g. "this version").
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Reference is a cited work: a preferred-citation target or a
// references entry. It carries the subset of CFF reference fields the
// engine reads and writes.
type Reference struct {
	// Type is the reference type (article, book, software, ...).
	Type string `json:"type" yaml:"type"`

	// Title is the referenced work's title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the referenced work's authors.
	Authors []Author `json:"authors,omitempty" yaml:"authors,omitempty"`

	// DOI is the referenced work's DOI.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Year is the publication year.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Journal is the venue for article references.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// Volume is the journal volume.
	Volume int `json:"volume,omitempty" yaml:"volume,omitempty"`

	// Issue is the journal issue.
	Issue int `json:"issue,omitempty" yaml:"issue,omitempty"`

	// Pages is the page count or range.
	Pages string `json:"pages,omitempty" yaml:"pages,omitempty"`

	// Publisher is the publishing entity's name.
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// URL is the referenced work's landing page.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Notes holds free-form annotations.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}
