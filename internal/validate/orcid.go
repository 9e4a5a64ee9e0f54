// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// orcidURLPrefix is the form CFF requires: the full resolvable URL,
// not the bare 16-character identifier.
const orcidURLPrefix = "https://orcid.org/"

// orcidPattern matches the identifier part: four groups of four digits,
// where the final check character may be X.
var orcidPattern = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)

// CheckORCID validates an ORCID in CFF form: the https://orcid.org/ URL
// with a well-formed identifier whose ISO 7064 mod 11-2 check character
// is correct.
func CheckORCID(orcid string) error {
	id, ok := strings.CutPrefix(orcid, orcidURLPrefix)
	if !ok {
		return fmt.Errorf("ORCID must use the %s... URL form: %q", orcidURLPrefix, orcid)
	}
	if !orcidPattern.MatchString(id) {
		return fmt.Errorf("malformed ORCID %q", id)
	}
	if orcidCheckChar(id) != id[len(id)-1] {
		return fmt.Errorf("ORCID %q fails its checksum", id)
	}
	return nil
}

// orcidCheckChar computes the ISO 7064 mod 11-2 check character over
// the first 15 digits of the identifier (hyphens skipped).
func orcidCheckChar(id string) byte {
	total := 0
	digits := 0
	for i := 0; i < len(id) && digits < 15; i++ {
		ch := id[i]
		if ch < '0' || ch > '9' {
			continue
		}
		total = (total + int(ch-'0')) * 2
		digits++
	}
	result := (12 - total%11) % 11
	if result == 10 {
		return 'X'
	}
	return byte('0' + result)
}
