// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citation-engine/internal/registry"
	"github.com/pdiddy/citation-engine/pkg/types"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Manage the local citation registry (ingest, query, export)",
	Long: `Registry maintains a SQLite index of CITATION.cff documents found
under the configured scan roots. Use subcommands to scan for records,
query them, or export the index.`,
}

// --- ingest subcommand ---

var registryIngestCmd = &cobra.Command{
	Use:   "ingest [roots...]",
	Short: "Scan directory trees for CITATION.cff files and index them",
	Long: `Ingest walks the given roots (or the configured scan roots) for
CITATION.cff files, validates each record, and indexes it with FTS5
full-text search. Unchanged files are skipped on subsequent runs.`,
	RunE: runRegistryIngest,
}

func runRegistryIngest(cmd *cobra.Command, args []string) error {
	cfg := registryConfig(cmd)
	if len(args) > 0 {
		cfg.ScanRoots = args
	}
	if len(cfg.ScanRoots) == 0 {
		cfg.ScanRoots = []string{"."}
	}

	store, err := registry.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- query subcommand ---

var registryQueryCmd = &cobra.Command{
	Use:   "query [search terms]",
	Short: "Query the registry with full-text search and filters",
	Long: `Query searches the registry using FTS5 full-text search over titles,
abstracts, authors, and keywords, structured filters (license, author,
keyword, valid-only), or a combination of both.`,
	RunE: runRegistryQuery,
}

func runRegistryQuery(cmd *cobra.Command, args []string) error {
	cfg := registryConfig(cmd)
	store, err := registry.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search terms, --license, --author, --keyword, or --valid-only")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(results, jsonOutput)
}

func formatQueryOutput(results []registry.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %-10s  %-18s  %-6s  %-6s  %s\n",
		"Title", "Version", "License", "Errors", "Warns", "Path")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%-40s  %-10s  %-18s  %-6d  %-6d  %s\n",
			truncateTitle(r.Title, 40), r.Version, r.License, r.Errors, r.Warnings, r.Path)
	}

	fmt.Fprintf(os.Stdout, "\n%d result(s)\n", len(results))
	return nil
}

// truncateTitle shortens title to max runes, never cutting a multibyte
// rune in half.
func truncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max-3]) + "..."
}

// --- export subcommand ---

var registryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the registry to YAML and JSON files",
	RunE:  runRegistryExport,
}

func runRegistryExport(cmd *cobra.Command, args []string) error {
	cfg := registryConfig(cmd)
	store, err := registry.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, nil)
	ctx := context.Background()
	if err := store.ExportYAML(ctx, opts); err != nil {
		return err
	}
	if err := store.ExportJSON(ctx, opts); err != nil {
		return err
	}
	fmt.Printf("Exported registry to %s/index/\n", cfg.RegistryDir)
	return nil
}

// registryConfig builds the registry configuration from flags, config
// file, and defaults (in that order).
func registryConfig(cmd *cobra.Command) types.RegistryConfig {
	cfg := types.RegistryConfig{
		RegistryDir: viper.GetString("registry.registry_dir"),
		ScanRoots:   viper.GetStringSlice("registry.scan_roots"),
		MaxResults:  viper.GetInt("registry.max_results"),
	}
	if dir, _ := cmd.Flags().GetString("registry-dir"); dir != "" {
		cfg.RegistryDir = dir
	}
	if cfg.RegistryDir == "" {
		cfg.RegistryDir = "registry"
	}
	if max, _ := cmd.Flags().GetInt("max-results"); max > 0 {
		cfg.MaxResults = max
	}
	return cfg
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) registry.QueryOptions {
	license, _ := cmd.Flags().GetString("license")
	author, _ := cmd.Flags().GetString("author")
	keyword, _ := cmd.Flags().GetString("keyword")
	validOnly, _ := cmd.Flags().GetBool("valid-only")

	return registry.QueryOptions{
		Query:     strings.Join(args, " "),
		License:   license,
		Author:    author,
		Keyword:   keyword,
		ValidOnly: validOnly,
	}
}

func init() {
	for _, c := range []*cobra.Command{registryIngestCmd, registryQueryCmd, registryExportCmd} {
		c.Flags().String("registry-dir", "", "base directory for the registry (contains index/)")
	}
	for _, c := range []*cobra.Command{registryQueryCmd, registryExportCmd} {
		c.Flags().String("license", "", "filter by SPDX license identifier")
		c.Flags().String("author", "", "filter by author name substring")
		c.Flags().String("keyword", "", "filter by keyword")
		c.Flags().Bool("valid-only", false, "only records with zero validation errors")
	}
	registryQueryCmd.Flags().Int("max-results", 20, "maximum number of query results")
	registryQueryCmd.Flags().Bool("json", false, "output results as JSON")

	registryCmd.AddCommand(registryIngestCmd, registryQueryCmd, registryExportCmd)
	rootCmd.AddCommand(registryCmd)
}
