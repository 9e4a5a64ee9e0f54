// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve checks CFF identifiers against the registries that
// issue them: doi.org registration and Crossref work metadata.
// Implements: prd004-resolution (R1-R5);
//
//	docs/ARCHITECTURE § Resolution.
package resolve

import (
	"net/url"
	"regexp"
	"strings"
)

// IdentifierType classifies an input identifier.
type IdentifierType int

const (
	TypeUnknown IdentifierType = iota
	TypeDOI
	TypeORCID
	TypeSWH
	TypeURL
)

func (t IdentifierType) String() string {
	switch t {
	case TypeDOI:
		return "doi"
	case TypeORCID:
		return "orcid"
	case TypeSWH:
		return "swh"
	case TypeURL:
		return "url"
	default:
		return "unknown"
	}
}

// Base URLs for identifier resolution. Declared as vars so tests can
// substitute httptest servers.
var (
	doiBase         = "https://doi.org/"
	crossrefAPIBase = "https://api.crossref.org/works/"
)

// doiPattern matches bare DOIs: "10.1145/1234567.1234568".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/[^\s]+$`)

// orcidPattern matches the bare ORCID identifier.
var orcidPattern = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)

// swhPattern matches core Software Heritage identifiers.
var swhPattern = regexp.MustCompile(`^swh:1:(snp|rel|rev|dir|cnt):[0-9a-f]{40}$`)

// Classify determines the identifier type and returns the normalized
// form: DOIs are stripped to the bare identifier, ORCIDs expand to the
// https://orcid.org/ URL form.
func Classify(identifier string) (IdentifierType, string) {
	identifier = strings.TrimSpace(identifier)

	bare := identifier
	for _, prefix := range []string{"doi:", "https://doi.org/", "http://doi.org/", "https://dx.doi.org/"} {
		if rest, ok := strings.CutPrefix(identifier, prefix); ok {
			bare = rest
			break
		}
	}
	if doiPattern.MatchString(bare) {
		return TypeDOI, bare
	}

	orcid := identifier
	for _, prefix := range []string{"https://orcid.org/", "http://orcid.org/", "orcid:"} {
		if rest, ok := strings.CutPrefix(identifier, prefix); ok {
			orcid = rest
			break
		}
	}
	if orcidPattern.MatchString(orcid) {
		return TypeORCID, "https://orcid.org/" + orcid
	}

	if swhPattern.MatchString(identifier) {
		return TypeSWH, identifier
	}

	if u, err := url.Parse(identifier); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return TypeURL, identifier
	}

	return TypeUnknown, identifier
}

// ResolutionURL returns the URL whose resolution confirms the
// identifier is registered. Software Heritage identifiers resolve
// through the archive's API.
func ResolutionURL(idType IdentifierType, normalized string) string {
	switch idType {
	case TypeDOI:
		return doiBase + normalized
	case TypeORCID:
		return normalized
	case TypeSWH:
		return "https://archive.softwareheritage.org/api/1/resolve/" + normalized + "/"
	case TypeURL:
		return normalized
	default:
		return ""
	}
}
