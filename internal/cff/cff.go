// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cff reads and writes Citation File Format documents.
// Implements: prd001-schema (R1-R4);
//
//	docs/ARCHITECTURE § Schema Codec.
package cff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// FileName is the conventional name of a CFF document in a repository root.
const FileName = "CITATION.cff"

// Parse decodes a CFF document. Decoding is strict: keys that are not
// part of the schema are an error, so typos like "family-name" surface
// at parse time (R1.3). An empty document is an error.
func Parse(data []byte) (*types.Citation, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c types.Citation
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty document")
		}
		return nil, fmt.Errorf("parsing CFF document: %w", err)
	}

	// A second document in the same file is not part of the format.
	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		return nil, fmt.Errorf("multiple YAML documents in one CFF file")
	} else if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing CFF document: %w", err)
	}

	return &c, nil
}

// ParseFile reads and decodes the CFF document at path.
func ParseFile(path string) (*types.Citation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Encode writes the record to w in canonical field order (the order the
// CFF 1.2.0 schema documents its fields), two-space indented (R3.1).
func Encode(c *types.Citation, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding CFF document: %w", err)
	}
	return enc.Close()
}

// Marshal returns the canonical encoding of the record.
func Marshal(c *types.Citation) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile atomically replaces the file at path with the canonical
// encoding of the record (R3.2). Readers never observe a partial write.
func WriteFile(path string, c *types.Citation) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
