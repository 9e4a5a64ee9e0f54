// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-engine/internal/cff"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Rewrite CFF documents in canonical form",
	Long: `Fmt re-encodes CFF documents with canonical field order and two-space
indentation. With --check, no file is rewritten; files that are not
canonical are listed and the command exits nonzero.

With no arguments, formats ./CITATION.cff.`,
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "list non-canonical files instead of rewriting")

	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, _ := cmd.Flags().GetBool("check")

	if len(args) == 0 {
		args = []string{cff.FileName}
	}

	dirty := 0
	for _, path := range args {
		changed, err := formatFile(path, check)
		if err != nil {
			return err
		}
		if changed {
			dirty++
			if check {
				fmt.Println(path)
			} else {
				fmt.Printf("formatted %s\n", path)
			}
		}
	}

	if check && dirty > 0 {
		return fmt.Errorf("%d file(s) not in canonical form", dirty)
	}
	return nil
}

// formatFile reports whether path deviates from canonical form, and
// rewrites it unless checkOnly is set.
func formatFile(path string, checkOnly bool) (bool, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	record, err := cff.Parse(original)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	canonical, err := cff.Marshal(record)
	if err != nil {
		return false, err
	}

	if bytes.Equal(original, canonical) {
		return false, nil
	}
	if checkOnly {
		return true, nil
	}
	return true, cff.WriteFile(path, record)
}
