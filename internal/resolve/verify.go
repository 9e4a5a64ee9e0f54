// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/pdiddy/citation-engine/internal/httputil"
	"github.com/pdiddy/citation-engine/pkg/types"
)

// VerifyDOI confirms a DOI is registered by resolving it through
// doi.org (R2.1). The client follows redirects; any landing status
// below 400 counts as registered. A 404 from the resolver means the
// DOI does not exist.
func VerifyDOI(ctx context.Context, client *http.Client, doi string, cfg types.ResolutionConfig) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, doiBase+doi, nil)
	if err != nil {
		return fmt.Errorf("creating doi.org request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", doi, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("DOI %s is not registered", doi)
	case resp.StatusCode >= 400:
		return fmt.Errorf("resolving %s: HTTP %d", doi, resp.StatusCode)
	}
	return nil
}

// Mismatch reports one disagreement between the record and the registry.
type Mismatch struct {
	Field    string `json:"field" yaml:"field"`
	Record   string `json:"record" yaml:"record"`
	Registry string `json:"registry" yaml:"registry"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: record has %q, registry has %q", m.Field, m.Record, m.Registry)
}

// CrossCheck compares a CFF record against the metadata its DOI is
// registered with (R4.1-R4.3). Mismatches are advisory: registries and
// records legitimately disagree on formatting, so callers surface them
// as warnings.
func CrossCheck(c *types.Citation, work *Work) []Mismatch {
	var out []Mismatch

	recTitle := c.Title
	if c.PreferredCitation != nil && c.PreferredCitation.DOI == c.DOI {
		recTitle = c.PreferredCitation.Title
	}
	if work.Title != "" && normalizeTitle(work.Title) != normalizeTitle(recTitle) {
		out = append(out, Mismatch{Field: "title", Record: recTitle, Registry: work.Title})
	}

	// A date-released that does not parse is validate's finding, not a
	// registry mismatch; skip the year comparison for it.
	if work.Year != 0 && c.DateReleased != "" {
		if t, err := time.Parse("2006-01-02", c.DateReleased); err == nil && t.Year() != work.Year {
			out = append(out, Mismatch{
				Field:    "year",
				Record:   fmt.Sprintf("%d", t.Year()),
				Registry: fmt.Sprintf("%d", work.Year),
			})
		}
	}

	// Author check is overlap, not equality: the registry may list a
	// superset (e.g. all paper authors vs. software maintainers).
	recorded := make(map[string]bool)
	for _, a := range c.Authors {
		if a.FamilyNames != "" {
			recorded[strings.ToLower(a.FamilyNames)] = true
		}
	}
	if len(recorded) > 0 {
		for _, wa := range work.Authors {
			if wa.Family == "" {
				continue
			}
			if !recorded[strings.ToLower(wa.Family)] {
				out = append(out, Mismatch{
					Field:    "authors",
					Record:   "(absent)",
					Registry: strings.TrimSpace(wa.Given + " " + wa.Family),
				})
			}
		}
	}

	return out
}

// normalizeTitle returns a lowercased, punctuation-stripped version of
// the title for comparison.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
