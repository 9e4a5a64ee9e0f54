// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-engine/internal/cff"
	"github.com/pdiddy/citation-engine/internal/validate"
	"github.com/pdiddy/citation-engine/pkg/types"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Scaffold a CITATION.cff document",
	Long: `New writes a CITATION.cff for the current repository from flags.
Author names given as free-form strings ("Ada Lovelace") are split into
CFF given-names/family-names form. The write is atomic and refuses to
overwrite an existing file without --force.`,
	RunE: runNew,
}

func init() {
	newCmd.Flags().String("title", "", "title of the work (required)")
	newCmd.Flags().StringSlice("author", nil, "author name, repeatable (required)")
	newCmd.Flags().String("type", "software", "work type: software or dataset")
	newCmd.Flags().String("message", "If you use this software, please cite it using the metadata from this file.", "citation message")
	newCmd.Flags().String("license", "", "SPDX license identifier")
	newCmd.Flags().String("doi", "", "DOI of the release")
	newCmd.Flags().String("version", "", "release version")
	newCmd.Flags().String("date-released", "", "release date (YYYY-MM-DD)")
	newCmd.Flags().String("repository-code", "", "source repository URL")
	newCmd.Flags().String("url", "", "landing page URL")
	newCmd.Flags().StringSlice("keyword", nil, "keyword, repeatable")
	newCmd.Flags().String("output", cff.FileName, "output path")
	newCmd.Flags().Bool("force", false, "overwrite an existing file")

	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	authors, _ := cmd.Flags().GetStringSlice("author")
	if title == "" || len(authors) == 0 {
		return fmt.Errorf("--title and at least one --author are required")
	}

	workType, _ := cmd.Flags().GetString("type")
	message, _ := cmd.Flags().GetString("message")
	license, _ := cmd.Flags().GetString("license")
	doi, _ := cmd.Flags().GetString("doi")
	version, _ := cmd.Flags().GetString("version")
	dateReleased, _ := cmd.Flags().GetString("date-released")
	repoCode, _ := cmd.Flags().GetString("repository-code")
	landing, _ := cmd.Flags().GetString("url")
	keywords, _ := cmd.Flags().GetStringSlice("keyword")
	output, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", output)
		}
	}

	record := &types.Citation{
		CFFVersion:     "1.2.0",
		Message:        message,
		Type:           types.WorkType(workType),
		Title:          title,
		License:        license,
		DOI:            doi,
		Version:        version,
		DateReleased:   dateReleased,
		RepositoryCode: repoCode,
		URL:            landing,
		Keywords:       keywords,
	}
	for _, name := range authors {
		record.Authors = append(record.Authors, cff.SplitName(name))
	}

	// Refuse to scaffold a record that fails its own validation.
	result := validate.Check(record, types.ValidationConfig{IgnoreWarnings: true})
	if errs := result.Errors(); len(errs) > 0 {
		for _, d := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", d)
		}
		return fmt.Errorf("refusing to write an invalid record")
	}

	if err := cff.WriteFile(output, record); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", output)
	return nil
}
