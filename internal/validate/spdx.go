// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import "strings"

// spdxLicenses is the embedded SPDX identifier table. It covers the
// identifiers seen in practice on software citation records; the check
// is offline, so additions land here rather than in config.
var spdxLicenses = map[string]bool{
	"0BSD":                true,
	"AFL-3.0":             true,
	"AGPL-1.0-only":       true,
	"AGPL-1.0-or-later":   true,
	"AGPL-3.0-only":       true,
	"AGPL-3.0-or-later":   true,
	"Apache-1.1":          true,
	"Apache-2.0":          true,
	"APSL-2.0":            true,
	"Artistic-1.0":        true,
	"Artistic-2.0":        true,
	"BSD-1-Clause":        true,
	"BSD-2-Clause":        true,
	"BSD-2-Clause-Patent": true,
	"BSD-3-Clause":        true,
	"BSD-3-Clause-Clear":  true,
	"BSD-4-Clause":        true,
	"BSL-1.0":             true,
	"CC-BY-1.0":           true,
	"CC-BY-2.0":           true,
	"CC-BY-2.5":           true,
	"CC-BY-3.0":           true,
	"CC-BY-4.0":           true,
	"CC-BY-NC-4.0":        true,
	"CC-BY-NC-ND-4.0":     true,
	"CC-BY-NC-SA-4.0":     true,
	"CC-BY-ND-4.0":        true,
	"CC-BY-SA-3.0":        true,
	"CC-BY-SA-4.0":        true,
	"CC-PDDC":             true,
	"CC0-1.0":             true,
	"CDDL-1.0":            true,
	"CDDL-1.1":            true,
	"CECILL-2.1":          true,
	"CECILL-B":            true,
	"CECILL-C":            true,
	"ClArtistic":          true,
	"CPL-1.0":             true,
	"ECL-2.0":             true,
	"EFL-2.0":             true,
	"EPL-1.0":             true,
	"EPL-2.0":             true,
	"EUPL-1.1":            true,
	"EUPL-1.2":            true,
	"GFDL-1.2-only":       true,
	"GFDL-1.2-or-later":   true,
	"GFDL-1.3-only":       true,
	"GFDL-1.3-or-later":   true,
	"GPL-1.0-only":        true,
	"GPL-1.0-or-later":    true,
	"GPL-2.0-only":        true,
	"GPL-2.0-or-later":    true,
	"GPL-3.0-only":        true,
	"GPL-3.0-or-later":    true,
	"HPND":                true,
	"ICU":                 true,
	"IJG":                 true,
	"ISC":                 true,
	"LGPL-2.0-only":       true,
	"LGPL-2.0-or-later":   true,
	"LGPL-2.1-only":       true,
	"LGPL-2.1-or-later":   true,
	"LGPL-3.0-only":       true,
	"LGPL-3.0-or-later":   true,
	"LPPL-1.3c":           true,
	"MIT":                 true,
	"MIT-0":               true,
	"MPL-1.1":             true,
	"MPL-2.0":             true,
	"MS-PL":               true,
	"MS-RL":               true,
	"NCSA":                true,
	"ODbL-1.0":            true,
	"OFL-1.1":             true,
	"OSL-3.0":             true,
	"PostgreSQL":          true,
	"Python-2.0":          true,
	"Ruby":                true,
	"SSPL-1.0":            true,
	"Sleepycat":           true,
	"Unicode-DFS-2016":    true,
	"Unlicense":           true,
	"UPL-1.0":             true,
	"Vim":                 true,
	"W3C":                 true,
	"WTFPL":               true,
	"X11":                 true,
	"Zlib":                true,
	"ZPL-2.1":             true,
}

// spdxExceptions lists license exceptions usable after WITH.
var spdxExceptions = map[string]bool{
	"Autoconf-exception-3.0":  true,
	"Bison-exception-2.2":     true,
	"Classpath-exception-2.0": true,
	"GCC-exception-3.1":       true,
	"LLVM-exception":          true,
	"OpenSSL-exception":       true,
}

// deprecatedAliases maps identifiers SPDX has retired to their
// replacements. They parse but earn a correction hint.
var deprecatedAliases = map[string]string{
	"GPL-2.0":   "GPL-2.0-only",
	"GPL-2.0+":  "GPL-2.0-or-later",
	"GPL-3.0":   "GPL-3.0-only",
	"GPL-3.0+":  "GPL-3.0-or-later",
	"LGPL-2.1":  "LGPL-2.1-only",
	"LGPL-2.1+": "LGPL-2.1-or-later",
	"LGPL-3.0":  "LGPL-3.0-only",
	"LGPL-3.0+": "LGPL-3.0-or-later",
	"AGPL-3.0":  "AGPL-3.0-only",
}

// UnknownLicenseIDs splits an SPDX license expression ("MIT",
// "Apache-2.0 OR GPL-3.0-or-later", "GPL-2.0-only WITH
// Classpath-exception-2.0") into operands and returns the ones no
// table recognizes. An empty return means every operand is a known
// identifier, alias, or exception.
func UnknownLicenseIDs(expr string) []string {
	fields := strings.FieldsFunc(expr, func(r rune) bool {
		return r == ' ' || r == '(' || r == ')'
	})

	var unknown []string
	withNext := false
	for _, f := range fields {
		switch f {
		case "AND", "OR":
			continue
		case "WITH":
			withNext = true
			continue
		}

		if withNext {
			withNext = false
			if !spdxExceptions[f] {
				unknown = append(unknown, f)
			}
			continue
		}

		id := strings.TrimSuffix(f, "+")
		if !spdxLicenses[id] && !spdxLicenses[f] {
			if _, aliased := deprecatedAliases[f]; !aliased {
				unknown = append(unknown, f)
			}
		}
	}
	return unknown
}

// LicenseReplacement returns the current identifier for a retired SPDX
// alias, or "" when id is not a known alias.
func LicenseReplacement(id string) string {
	return deprecatedAliases[id]
}
