// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/citation-engine/internal/cff"
	"github.com/pdiddy/citation-engine/pkg/types"
)

// bibtexMonths maps month numbers to the standard BibTeX month macros.
var bibtexMonths = [...]string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// RenderBibTeX writes the record as a BibTeX entry to w: @software for
// software records, @misc for datasets, @article for preferred
// citations with a journal (R3.1-R3.3).
func RenderBibTeX(c *types.Citation, usePreferred bool, w io.Writer) error {
	entry := bibtexEntryType(c, usePreferred)
	key := CitationKey(c, usePreferred)

	var fields []bibtexField
	add := func(name, value string) {
		if value != "" {
			fields = append(fields, bibtexField{name, "{" + bibtexEscape(value) + "}"})
		}
	}

	add("title", citationTitle(c, usePreferred))
	add("author", bibtexAuthors(citationAuthors(c, usePreferred)))

	if usePreferred {
		ref := c.PreferredCitation
		add("journal", ref.Journal)
		if ref.Volume != 0 {
			add("volume", fmt.Sprintf("%d", ref.Volume))
		}
		if ref.Issue != 0 {
			add("number", fmt.Sprintf("%d", ref.Issue))
		}
		add("pages", ref.Pages)
		add("publisher", ref.Publisher)
		add("url", ref.URL)
	} else {
		add("version", c.Version)
		add("url", firstNonEmpty(c.URL, c.RepositoryCode))
		add("license", c.License)
		if t := releaseDate(c); !t.IsZero() {
			// Month macros are unquoted by convention.
			fields = append(fields, bibtexField{"month", bibtexMonths[t.Month()-1]})
		}
	}

	if year := citationYear(c, usePreferred); year != 0 {
		add("year", fmt.Sprintf("%d", year))
	}
	add("doi", citationDOI(c, usePreferred))

	fmt.Fprintf(w, "@%s{%s,\n", entry, key)
	for i, f := range fields {
		sep := ","
		if i == len(fields)-1 {
			sep = ""
		}
		fmt.Fprintf(w, "  %-9s = %s%s\n", f.name, f.value, sep)
	}
	fmt.Fprintln(w, "}")
	return nil
}

type bibtexField struct {
	name  string
	value string
}

func bibtexEntryType(c *types.Citation, usePreferred bool) string {
	if usePreferred {
		if c.PreferredCitation.Journal != "" {
			return "article"
		}
		return "misc"
	}
	if c.Type == types.WorkDataset {
		return "misc"
	}
	return "software"
}

// bibtexAuthors joins authors in "Family, Given and Family, Given"
// form. Entity names are braced so BibTeX does not split them.
func bibtexAuthors(authors []types.Author) string {
	parts := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.IsEntity() {
			parts = append(parts, "{"+a.Name+"}")
			continue
		}
		parts = append(parts, cff.FamilyFirst(a))
	}
	return strings.Join(parts, " and ")
}

// bibtexEscape escapes the characters TeX treats specially in field values.
var bibtexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
)

func bibtexEscape(s string) string {
	return bibtexEscaper.Replace(s)
}
