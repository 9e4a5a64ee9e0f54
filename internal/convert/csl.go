package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style
// Language) format. The field names and structure follow the
// CSL-JSON/CSL-YAML schema so that output is consumable by Pandoc and
// reference managers. Implements: prd005-conversion R2.1.
type CSLItem struct {
	ID        string    `yaml:"id" json:"id"`
	Type      string    `yaml:"type" json:"type"`
	Title     string    `yaml:"title" json:"title"`
	Author    []CSLName `yaml:"author,omitempty" json:"author,omitempty"`
	Abstract  string    `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Issued    *CSLDate  `yaml:"issued,omitempty" json:"issued,omitempty"`
	DOI       string    `yaml:"DOI,omitempty" json:"DOI,omitempty"`
	URL       string    `yaml:"URL,omitempty" json:"URL,omitempty"`
	Version   string    `yaml:"version,omitempty" json:"version,omitempty"`
	Publisher string    `yaml:"publisher,omitempty" json:"publisher,omitempty"`
	Container string    `yaml:"container-title,omitempty" json:"container-title,omitempty"`
	Volume    int       `yaml:"volume,omitempty" json:"volume,omitempty"`
	Issue     int       `yaml:"issue,omitempty" json:"issue,omitempty"`
	Page      string    `yaml:"page,omitempty" json:"page,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty" json:"family,omitempty"`
	Given   string `yaml:"given,omitempty" json:"given,omitempty"`
	Literal string `yaml:"literal,omitempty" json:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts" json:"date-parts"`
}

// RenderCSLYAML writes the record as a single-item CSL-YAML list to w.
func RenderCSLYAML(c *types.Citation, usePreferred bool, w io.Writer) error {
	items := []CSLItem{toCSLItem(c, usePreferred)}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(items)
}

// RenderCSLJSON writes the record as a single-item CSL-JSON array to w.
func RenderCSLJSON(c *types.Citation, usePreferred bool, w io.Writer) error {
	items := []CSLItem{toCSLItem(c, usePreferred)}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// toCSLItem converts the cited work to a CSLItem.
func toCSLItem(c *types.Citation, usePreferred bool) CSLItem {
	item := CSLItem{
		ID:    CitationKey(c, usePreferred),
		Type:  cslType(c, usePreferred),
		Title: citationTitle(c, usePreferred),
		DOI:   citationDOI(c, usePreferred),
	}

	for _, a := range citationAuthors(c, usePreferred) {
		item.Author = append(item.Author, toCSLName(a))
	}

	if usePreferred {
		ref := c.PreferredCitation
		item.URL = ref.URL
		item.Container = ref.Journal
		item.Volume = ref.Volume
		item.Issue = ref.Issue
		item.Page = ref.Pages
		item.Publisher = ref.Publisher
		if ref.Year != 0 {
			item.Issued = &CSLDate{DateParts: [][]int{{ref.Year}}}
		}
		return item
	}

	item.Abstract = c.Abstract
	item.URL = firstNonEmpty(c.URL, c.RepositoryCode)
	item.Version = c.Version
	if t := releaseDate(c); !t.IsZero() {
		item.Issued = &CSLDate{
			DateParts: [][]int{{t.Year(), int(t.Month()), t.Day()}},
		}
	}
	return item
}

// cslType maps the cited work to a CSL item type.
func cslType(c *types.Citation, usePreferred bool) string {
	if usePreferred {
		switch c.PreferredCitation.Type {
		case "article", "magazine-article", "newspaper-article", "conference-paper":
			return "article-journal"
		case "book":
			return "book"
		case "thesis":
			return "thesis"
		case "report":
			return "report"
		case "software", "software-code", "software-container", "software-executable":
			return "software"
		default:
			return "document"
		}
	}
	if c.Type == types.WorkDataset {
		return "dataset"
	}
	return "software"
}

// toCSLName converts a CFF author to a CSL name. Entities use the
// literal field.
func toCSLName(a types.Author) CSLName {
	if a.IsEntity() {
		return CSLName{Literal: a.Name}
	}
	family := a.FamilyNames
	if a.NameParticle != "" {
		family = a.NameParticle + " " + family
	}
	return CSLName{Family: family, Given: a.GivenNames}
}

// CitationKey derives a stable citation key for the cited work:
// lowercased first-author family name plus year ("droettboom2018"),
// falling back to a title slug when either part is missing.
func CitationKey(c *types.Citation, usePreferred bool) string {
	authors := citationAuthors(c, usePreferred)
	var stem string
	if len(authors) > 0 {
		a := authors[0]
		if a.IsEntity() {
			stem = slugify(a.Name)
		} else {
			stem = slugify(a.FamilyNames)
		}
	}
	if stem == "" {
		stem = slugify(citationTitle(c, usePreferred))
	}
	if stem == "" {
		stem = "citation"
	}
	if year := citationYear(c, usePreferred); year != 0 {
		return fmt.Sprintf("%s%d", stem, year)
	}
	return stem
}

// slugify lowercases s and strips everything but letters and digits.
func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
