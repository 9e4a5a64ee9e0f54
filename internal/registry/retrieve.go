// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for registry queries (R2, R3).
type QueryOptions struct {
	// Query is the FTS5 full-text search string over title, abstract,
	// authors, and keywords (R2.1).
	Query string

	// License filters by exact SPDX identifier (R3.1).
	License string

	// Author filters by author name substring (R3.2).
	Author string

	// Keyword filters by exact keyword, case-insensitive (R3.3).
	Keyword string

	// ValidOnly keeps only records with zero validation errors (R3.4).
	ValidOnly bool

	// MaxResults limits result count. Zero uses store default (R2.3).
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.License == "" && q.Author == "" &&
		q.Keyword == "" && !q.ValidOnly
}

// QueryResult is one registry record with its validation counts (R2.4).
type QueryResult struct {
	Path         string   `json:"path" yaml:"path"`
	Title        string   `json:"title" yaml:"title"`
	Type         string   `json:"type,omitempty" yaml:"type,omitempty"`
	Version      string   `json:"version,omitempty" yaml:"version,omitempty"`
	License      string   `json:"license,omitempty" yaml:"license,omitempty"`
	DOI          string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	DateReleased string   `json:"date_released,omitempty" yaml:"date_released,omitempty"`
	Authors      []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Keywords     []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Errors       int      `json:"errors" yaml:"errors"`
	Warnings     int      `json:"warnings" yaml:"warnings"`
}

// Retrieve queries the registry with optional full-text search and
// structured filters (R2, R3). Full-text queries rank by FTS relevance;
// structured-only queries sort by path (R3.6).
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.path, r.title, r.work_type, r.version, r.license, r.doi,
				r.date_released, r.authors, r.keywords, r.errors, r.warnings
			FROM records_fts
			JOIN records r ON r.rowid = records_fts.rowid
			WHERE records_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT r.path, r.title, r.work_type, r.version, r.license, r.doi,
				r.date_released, r.authors, r.keywords, r.errors, r.warnings
			FROM records r
			WHERE 1=1`)
	}

	if opts.License != "" {
		qb.WriteString(` AND r.license = ?`)
		args = append(args, opts.License)
	}

	if opts.Author != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(r.authors) WHERE value LIKE ?)`)
		args = append(args, "%"+opts.Author+"%")
	}

	if opts.Keyword != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(r.keywords) WHERE lower(value) = lower(?))`)
		args = append(args, opts.Keyword)
	}

	if opts.ValidOnly {
		qb.WriteString(` AND r.errors = 0`)
	}

	if useFTS {
		qb.WriteString(` ORDER BY records_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY r.path`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying registry: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr           QueryResult
			authorsJSON  sql.NullString
			keywordsJSON sql.NullString
		)

		if err := rows.Scan(
			&qr.Path, &qr.Title, &qr.Type, &qr.Version, &qr.License,
			&qr.DOI, &qr.DateReleased, &authorsJSON, &keywordsJSON,
			&qr.Errors, &qr.Warnings,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		if authorsJSON.Valid {
			json.Unmarshal([]byte(authorsJSON.String), &qr.Authors)
		}
		if keywordsJSON.Valid {
			json.Unmarshal([]byte(keywordsJSON.String), &qr.Keywords)
		}

		results = append(results, qr)
	}

	return results, rows.Err()
}
