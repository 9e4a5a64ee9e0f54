// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// doiPattern matches DOIs: "10.1145/1234567.1234568". The registrant
// prefix is 4-9 digits; the suffix is registrant-defined and free-form.
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/[^\s]+$`)

// CheckDOI validates a bare DOI string. URL forms ("https://doi.org/10...")
// are rejected: CFF stores the bare identifier.
func CheckDOI(doi string) error {
	if strings.HasPrefix(doi, "http://") || strings.HasPrefix(doi, "https://") {
		return fmt.Errorf("DOI must be bare, not a URL: %q", doi)
	}
	if !doiPattern.MatchString(doi) {
		return fmt.Errorf("malformed DOI %q", doi)
	}
	return nil
}

// IsDOI reports whether s looks like a bare DOI.
func IsDOI(s string) bool {
	return doiPattern.MatchString(s)
}
