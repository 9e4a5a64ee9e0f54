// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key
// name and the file contents (trimmed) are the value. An environment
// variable of the form CITATION_ENGINE_<KEY> overrides the file.
//
// Supported key files: crossref-mailto.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// envPrefix is prepended to the uppercased, underscored key name when
// looking for an environment override.
const envPrefix = "CITATION_ENGINE_"

// Store holds loaded secrets keyed by file name.
type Store map[string]string

// Load reads all files in dir into a Store. A missing directory is not
// an error; Load returns an empty Store. Unreadable files produce a
// warning on stderr but do not abort.
func Load(dir string) (Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Store)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			s[entry.Name()] = value
		}
	}

	return s, nil
}

// Get returns the secret for key, preferring the environment override
// over the loaded file. Missing keys return "".
func (s Store) Get(key string) string {
	env := envPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
	if v := os.Getenv(env); v != "" {
		return v
	}
	return s[key]
}
