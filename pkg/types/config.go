package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citation-engine/0.1"). Per prd004-resolution R5.2.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ValidationConfig holds settings for the validation stage. Strictness
// (warnings fail the record) is a caller decision made through
// Result.OK, not a check-time setting.
// Per prd002-validation R5.1-R5.3.
type ValidationConfig struct {
	// IgnoreWarnings suppresses warning diagnostics entirely.
	IgnoreWarnings bool `json:"ignore_warnings" yaml:"ignore_warnings"`
}

// RegistryConfig holds settings for the citation registry stage.
// Per prd003-registry R1.2, R2.3.
type RegistryConfig struct {
	// RegistryDir is the base directory for the registry (contains index/).
	RegistryDir string `json:"registry_dir" yaml:"registry_dir"`

	// ScanRoots are the directory trees scanned for CITATION.cff files.
	ScanRoots []string `json:"scan_roots" yaml:"scan_roots"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ResolutionConfig holds settings for the identifier resolution stage.
// Per prd004-resolution R2.4, R5.1-R5.3.
type ResolutionConfig struct {
	HTTPConfig `yaml:",inline"`

	// Mailto joins the Crossref polite pool; usually loaded from
	// .secrets/crossref-mailto.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// MaxRetries bounds retries on HTTP 429 responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Validation ValidationConfig `json:"validation" yaml:"validation"`
	Registry   RegistryConfig   `json:"registry" yaml:"registry"`
	Resolution ResolutionConfig `json:"resolution" yaml:"resolution"`
}
