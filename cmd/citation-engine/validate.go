// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-engine/internal/cff"
	"github.com/pdiddy/citation-engine/internal/validate"
	"github.com/pdiddy/citation-engine/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate CITATION.cff documents against the CFF schema",
	Long: `Validate checks CFF documents for schema conformance: required fields,
author forms, DOI and ORCID formats (including the ORCID checksum), SPDX
license identifiers, dates, and URLs. Warnings flag valid but incomplete
records; --strict promotes them to failures.

With no arguments, validates ./CITATION.cff.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("strict", false, "treat warnings as errors")
	validateCmd.Flags().Bool("quiet", false, "suppress warnings, report errors only")
	validateCmd.Flags().Bool("json", false, "output diagnostics as JSON")

	rootCmd.AddCommand(validateCmd)
}

// fileReport pairs a file with its diagnostics for JSON output.
type fileReport struct {
	File        string                `json:"file"`
	Valid       bool                  `json:"valid"`
	Diagnostics []validate.Diagnostic `json:"diagnostics"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	quiet, _ := cmd.Flags().GetBool("quiet")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if len(args) == 0 {
		args = []string{cff.FileName}
	}

	cfg := types.ValidationConfig{IgnoreWarnings: quiet}

	var reports []fileReport
	failed := 0

	for _, path := range args {
		record, err := cff.ParseFile(path)
		if err != nil {
			reports = append(reports, fileReport{
				File:  path,
				Valid: false,
				Diagnostics: []validate.Diagnostic{{
					Severity: validate.SeverityError,
					Field:    "(document)",
					Message:  err.Error(),
				}},
			})
			failed++
			continue
		}

		result := validate.Check(record, cfg)
		ok := result.OK(strict)
		if !ok {
			failed++
		}
		reports = append(reports, fileReport{
			File:        path,
			Valid:       ok,
			Diagnostics: result.Diagnostics,
		})
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		printReports(reports)
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}

func printReports(reports []fileReport) {
	for _, r := range reports {
		if len(r.Diagnostics) == 0 {
			fmt.Printf("%s: valid\n", r.File)
			continue
		}
		status := "valid"
		if !r.Valid {
			status = "invalid"
		}
		fmt.Printf("%s: %s\n", r.File, status)
		for _, d := range r.Diagnostics {
			fmt.Printf("  %s\n", d)
		}
	}
}
