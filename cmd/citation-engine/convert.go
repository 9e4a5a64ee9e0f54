// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-engine/internal/cff"
	"github.com/pdiddy/citation-engine/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Render a CFF document in a downstream bibliographic format",
	Long: `Convert renders a CITATION.cff document as CSL-YAML, CSL-JSON, BibTeX,
or a plain-text citation. With --preferred, the record's preferred-citation
(typically a paper) is rendered instead of the software itself.

With no argument, converts ./CITATION.cff.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("to", "csl", "output format: csl, csl-json, bibtex, or text")
	convertCmd.Flags().String("output", "", "write to file instead of stdout")
	convertCmd.Flags().Bool("preferred", false, "render the preferred-citation instead of the software record")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("to")
	output, _ := cmd.Flags().GetString("output")
	preferred, _ := cmd.Flags().GetBool("preferred")

	path := cff.FileName
	if len(args) == 1 {
		path = args[0]
	}

	format, err := convert.ParseFormat(formatName)
	if err != nil {
		return err
	}

	record, err := cff.ParseFile(path)
	if err != nil {
		return err
	}

	render := func(w io.Writer) error {
		return convert.Render(record, format, preferred, w)
	}

	if output == "" {
		return render(os.Stdout)
	}

	f, err := renameio.NewPendingFile(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	defer f.Cleanup()
	if err := render(f); err != nil {
		return err
	}
	return f.CloseAtomicallyReplace()
}
