// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert renders CFF records in downstream bibliographic
// formats: CSL (YAML and JSON), BibTeX, and plain text.
// Implements: prd005-conversion (R1-R4);
//
//	docs/ARCHITECTURE § Conversion.
package convert

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// Format identifies an output format.
type Format string

const (
	FormatCSL     Format = "csl"
	FormatCSLJSON Format = "csl-json"
	FormatBibTeX  Format = "bibtex"
	FormatText    Format = "text"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSL, FormatCSLJSON, FormatBibTeX, FormatText:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (csl, csl-json, bibtex, text)", s)
}

// Render writes the record to w in the requested format. When the
// record carries a preferred-citation and usePreferred is set, the
// preferred work is rendered instead of the software record (R1.4).
func Render(c *types.Citation, format Format, usePreferred bool, w io.Writer) error {
	if usePreferred && c.PreferredCitation == nil {
		return fmt.Errorf("record has no preferred-citation")
	}
	switch format {
	case FormatCSL:
		return RenderCSLYAML(c, usePreferred, w)
	case FormatCSLJSON:
		return RenderCSLJSON(c, usePreferred, w)
	case FormatBibTeX:
		return RenderBibTeX(c, usePreferred, w)
	case FormatText:
		return RenderText(c, usePreferred, w)
	}
	return fmt.Errorf("unknown format %q", format)
}

// releaseDate parses date-released, returning the zero time when the
// field is absent or malformed (validation reports the latter).
func releaseDate(c *types.Citation) time.Time {
	if c.DateReleased == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", c.DateReleased)
	if err != nil {
		return time.Time{}
	}
	return t
}

// citationYear returns the year to cite: the reference year for
// preferred citations, the release year otherwise. Zero means unknown.
func citationYear(c *types.Citation, usePreferred bool) int {
	if usePreferred {
		return c.PreferredCitation.Year
	}
	if t := releaseDate(c); !t.IsZero() {
		return t.Year()
	}
	return 0
}

// citationAuthors returns the author list of the work being rendered.
// A preferred-citation without its own authors inherits the software's.
func citationAuthors(c *types.Citation, usePreferred bool) []types.Author {
	if usePreferred && len(c.PreferredCitation.Authors) > 0 {
		return c.PreferredCitation.Authors
	}
	return c.Authors
}

// citationTitle returns the title of the work being rendered.
func citationTitle(c *types.Citation, usePreferred bool) string {
	if usePreferred {
		return c.PreferredCitation.Title
	}
	return c.Title
}

// citationDOI returns the DOI of the work being rendered.
func citationDOI(c *types.Citation, usePreferred bool) string {
	if usePreferred {
		return c.PreferredCitation.DOI
	}
	return c.DOI
}
