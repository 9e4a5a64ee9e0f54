// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// RenderText writes a one-paragraph APA-style citation to w (R4.1).
func RenderText(c *types.Citation, usePreferred bool, w io.Writer) error {
	var b strings.Builder

	if names := textAuthors(citationAuthors(c, usePreferred)); names != "" {
		b.WriteString(names)
		b.WriteString(" ")
	}

	if year := citationYear(c, usePreferred); year != 0 {
		fmt.Fprintf(&b, "(%d). ", year)
	}

	b.WriteString(citationTitle(c, usePreferred))

	if usePreferred {
		ref := c.PreferredCitation
		b.WriteString(".")
		if ref.Journal != "" {
			fmt.Fprintf(&b, " %s", ref.Journal)
			if ref.Volume != 0 {
				fmt.Fprintf(&b, ", %d", ref.Volume)
				if ref.Issue != 0 {
					fmt.Fprintf(&b, "(%d)", ref.Issue)
				}
			}
			if ref.Pages != "" {
				fmt.Fprintf(&b, ", %s", ref.Pages)
			}
			b.WriteString(".")
		}
	} else {
		if c.Version != "" {
			fmt.Fprintf(&b, " (Version %s)", c.Version)
		}
		if c.Type == types.WorkDataset {
			b.WriteString(" [Data set].")
		} else {
			b.WriteString(" [Computer software].")
		}
	}

	if doi := citationDOI(c, usePreferred); doi != "" {
		fmt.Fprintf(&b, " https://doi.org/%s", doi)
	} else if u := citationURL(c, usePreferred); u != "" {
		fmt.Fprintf(&b, " %s", u)
	}

	_, err := fmt.Fprintln(w, b.String())
	return err
}

// textAuthors renders "Family, G., Family, G., & Family, G." with
// given names reduced to initials. Entities print their full name.
func textAuthors(authors []types.Author) string {
	parts := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.IsEntity() {
			parts = append(parts, a.Name)
			continue
		}
		family := a.FamilyNames
		if a.NameParticle != "" {
			family = a.NameParticle + " " + family
		}
		if init := initials(a.GivenNames); init != "" {
			parts = append(parts, family+", "+init)
		} else {
			parts = append(parts, family)
		}
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", & " + parts[len(parts)-1]
	}
}

// initials reduces "Mary Jane" to "M. J.".
func initials(given string) string {
	fields := strings.Fields(given)
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string([]rune(f)[0]) + "."
	}
	return strings.Join(out, " ")
}

func citationURL(c *types.Citation, usePreferred bool) string {
	if usePreferred {
		return c.PreferredCitation.URL
	}
	return firstNonEmpty(c.URL, c.RepositoryCode)
}
