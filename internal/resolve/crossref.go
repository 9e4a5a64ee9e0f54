// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/citation-engine/internal/httputil"
	"github.com/pdiddy/citation-engine/pkg/types"
)

// Work is the subset of Crossref work metadata used for cross-checking.
type Work struct {
	Title   string
	Authors []WorkAuthor
	Year    int
}

// WorkAuthor is a contributor name as the registry records it.
type WorkAuthor struct {
	Given  string
	Family string
}

// crossrefResponse captures the fields we need from a Crossref work record.
type crossrefResponse struct {
	Message struct {
		Title  []string `json:"title"`
		Author []struct {
			Given  string `json:"given"`
			Family string `json:"family"`
		} `json:"author"`
		Issued struct {
			DateParts [][]int `json:"date-parts"`
		} `json:"issued"`
	} `json:"message"`
}

// FetchWork queries the Crossref works API for a DOI's registered
// metadata (R3.1). A configured mailto joins the polite pool (R3.4).
// It returns nil without error when the DOI is not in Crossref: DataCite
// DOIs (Zenodo releases) are registered but carry no Crossref record.
func FetchWork(ctx context.Context, client *http.Client, doi string, cfg types.ResolutionConfig) (*Work, error) {
	apiURL := crossrefAPIBase + url.PathEscape(doi)
	if cfg.Mailto != "" {
		apiURL += "?mailto=" + url.QueryEscape(cfg.Mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating Crossref request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing Crossref response: %w", err)
	}

	w := &Work{}
	if len(cr.Message.Title) > 0 {
		w.Title = cr.Message.Title[0]
	}
	for _, a := range cr.Message.Author {
		w.Authors = append(w.Authors, WorkAuthor{Given: a.Given, Family: a.Family})
	}
	if dp := cr.Message.Issued.DateParts; len(dp) > 0 && len(dp[0]) > 0 {
		w.Year = dp[0][0]
	}
	return w, nil
}
