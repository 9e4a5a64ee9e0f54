// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citation-engine/internal/cff"
	"github.com/pdiddy/citation-engine/internal/resolve"
	"github.com/pdiddy/citation-engine/pkg/types"
)

var doiCmd = &cobra.Command{
	Use:   "doi",
	Short: "Check a record's DOI against the registries that issued it",
	Long: `Doi resolves a record's persistent identifiers against live
registries: doi.org for registration, Crossref for registered metadata.
These are the only subcommands that touch the network.`,
}

// --- verify subcommand ---

var doiVerifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Confirm the record's DOI resolves",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDOIVerify,
}

func runDOIVerify(cmd *cobra.Command, args []string) error {
	record, err := parseRecordArg(args)
	if err != nil {
		return err
	}
	if record.DOI == "" {
		return fmt.Errorf("record has no doi field")
	}

	cfg := resolutionConfig()
	client := &http.Client{Timeout: cfg.Timeout}

	if err := resolve.VerifyDOI(context.Background(), client, record.DOI, cfg); err != nil {
		return err
	}
	fmt.Printf("%s resolves\n", record.DOI)
	return nil
}

// --- check subcommand ---

var doiCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Cross-check the record against its DOI's registered metadata",
	Long: `Check fetches the metadata the record's DOI is registered with from
Crossref and compares title, year, and authors. Mismatches are advisory;
the command fails only when the DOI cannot be resolved at all.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDOICheck,
}

func runDOICheck(cmd *cobra.Command, args []string) error {
	record, err := parseRecordArg(args)
	if err != nil {
		return err
	}
	if record.DOI == "" {
		return fmt.Errorf("record has no doi field")
	}

	cfg := resolutionConfig()
	client := &http.Client{Timeout: cfg.Timeout}
	ctx := context.Background()

	if err := resolve.VerifyDOI(ctx, client, record.DOI, cfg); err != nil {
		return err
	}

	work, err := resolve.FetchWork(ctx, client, record.DOI, cfg)
	if err != nil {
		return err
	}
	if work == nil {
		fmt.Printf("%s resolves (no Crossref metadata to compare)\n", record.DOI)
		return nil
	}

	mismatches := resolve.CrossCheck(record, work)
	if len(mismatches) == 0 {
		fmt.Printf("%s resolves; record matches registered metadata\n", record.DOI)
		return nil
	}

	fmt.Printf("%s resolves; %d mismatch(es) against registered metadata:\n",
		record.DOI, len(mismatches))
	for _, m := range mismatches {
		fmt.Fprintf(os.Stderr, "  warning: %s\n", m)
	}
	return nil
}

// parseRecordArg reads the record named by args, defaulting to ./CITATION.cff.
func parseRecordArg(args []string) (*types.Citation, error) {
	path := cff.FileName
	if len(args) == 1 {
		path = args[0]
	}
	return cff.ParseFile(path)
}

// resolutionConfig builds the resolution configuration from the config
// file, secrets, and defaults.
func resolutionConfig() types.ResolutionConfig {
	cfg := types.ResolutionConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("resolution.timeout"),
			UserAgent: viper.GetString("resolution.user_agent"),
		},
		Mailto:     viper.GetString("resolution.mailto"),
		MaxRetries: viper.GetInt("resolution.max_retries"),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "citation-engine/" + version
	}
	if cfg.Mailto == "" {
		cfg.Mailto = loadedSecrets.Get("crossref-mailto")
	}
	return cfg
}

func init() {
	doiCmd.AddCommand(doiVerifyCmd, doiCheckCmd)
	rootCmd.AddCommand(doiCmd)
}
