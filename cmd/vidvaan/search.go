// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vidvaan/internal/aggregate"
	"github.com/pdiddy/vidvaan/internal/export"
	"github.com/pdiddy/vidvaan/internal/filter"
	"github.com/pdiddy/vidvaan/internal/httputil"
	"github.com/pdiddy/vidvaan/internal/observability"
	"github.com/pdiddy/vidvaan/internal/provider"
	"github.com/pdiddy/vidvaan/internal/summary"
	"github.com/pdiddy/vidvaan/internal/view"
)

var searchCmd = &cobra.Command{
	Use:   "search <topic>",
	Short: "Search every repository for a topic",
	Long: `Search queries DBLP, ArXiv, OpenAlex, and OpenLibrary concurrently for
the topic and merges the results. Progress is reported on stderr as each
repository answers.

Filters narrow the displayed table by publication year and author. Exports
(--format csv, xlsx, doc, json, yaml) contain every result unless
--filtered is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("start-year", 0, "earliest publication year (default 1800)")
	searchCmd.Flags().Int("end-year", 0, "latest publication year (default 9999)")
	searchCmd.Flags().String("author", "", "keep publications whose authors contain this text")
	searchCmd.Flags().Int("page", 1, "page of the table to show")
	searchCmd.Flags().Int("page-size", 0, "rows per page (default from config, 50)")
	searchCmd.Flags().String("format", "table", "output format: "+strings.Join(export.Formats(), ", "))
	searchCmd.Flags().StringP("output", "o", "", "write the export to this file instead of stdout")
	searchCmd.Flags().Bool("filtered", false, "export the filtered view instead of every result")
	searchCmd.Flags().Bool("summarize", false, "request an AI summary of the result titles")
	searchCmd.Flags().StringSlice("providers", nil, "repositories to query (default all)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")

	format, _ := cmd.Flags().GetString("format")
	exp, err := export.ForFormat(format)
	if err != nil {
		return err
	}

	searchCfg := cfg.Search
	if names, _ := cmd.Flags().GetStringSlice("providers"); len(names) > 0 {
		searchCfg.Providers = names
	}
	providers, err := provider.FromConfig(searchCfg, httputil.NewClient(searchCfg.HTTPConfig), logger)
	if err != nil {
		return err
	}

	pageSize, _ := cmd.Flags().GetInt("page-size")
	if pageSize <= 0 {
		pageSize = cfg.View.PageSize
	}

	agg := aggregate.New(providers, searchCfg.ProviderTimeout, nil, observability.WithComponent(logger, "aggregate"))
	state := view.New(pageSize).BeginSearch(topic)
	token := state.Token

	stderr := cmd.ErrOrStderr()
	res, err := agg.Search(cmd.Context(), topic, func(u aggregate.Update) {
		state, _ = state.Merge(token, u.Snapshot)
		status := fmt.Sprintf("%d results", u.Added)
		if u.Err != nil {
			status = "failed: " + u.Err.Error()
		}
		fmt.Fprintf(stderr, "[%d/%d] %-12s %s\n", u.Done, u.Total, u.Repository, status)
	})
	if err != nil {
		return err
	}
	state, _ = state.Complete(token, res.Dataset)

	start, _ := cmd.Flags().GetInt("start-year")
	end, _ := cmd.Flags().GetInt("end-year")
	author, _ := cmd.Flags().GetString("author")
	criteria := filter.Criteria{StartYear: start, EndYear: end, Author: author}
	if err := criteria.Validate(); err != nil {
		fmt.Fprintf(stderr, "warning: %v; filters ignored\n", err)
	}
	state = state.ApplyFilters(criteria)

	page, _ := cmd.Flags().GetInt("page")
	state = state.SetPage(page)

	doc := export.Document{Topic: res.Topic, Publications: state.Original}
	if filtered, _ := cmd.Flags().GetBool("filtered"); filtered {
		doc.Publications = state.Active
	}
	if wantSummary, _ := cmd.Flags().GetBool("summarize"); wantSummary {
		doc.Summary = summarizeOrWarn(cmd.Context(), state.Original.Titles(), stderr)
	}

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return render(cmd.OutOrStdout(), exp, state, doc)
	}
	return writeFile(path, func(w io.Writer) error {
		return render(w, exp, state, doc)
	})
}

// render writes the table page or the export for doc to w.
func render(w io.Writer, exp export.Exporter, state view.State, doc export.Document) error {
	if t, ok := exp.(*export.Table); ok {
		return printPage(w, state, doc.Summary, t)
	}
	if err := exp.Export(w, doc); err != nil {
		return fmt.Errorf("exporting %s: %w", exp.Extension(), err)
	}
	return nil
}

// writeFile creates path, runs write against it, and reports the close
// error when write succeeded.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()
	return write(f)
}

// printPage shows the current page of the filtered view.
func printPage(w io.Writer, state view.State, summaryText string, t *export.Table) error {
	pg := state.View()
	t.Offset = (pg.Page - 1) * pg.PageSize
	if err := t.Export(w, export.Document{Publications: pg.Rows, Summary: summaryText}); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nPage %d of %d (%d of %d results shown after filters)\n",
		pg.Page, pg.TotalPages, pg.Total, len(state.Original))
	return nil
}

// summarizeOrWarn asks the summary service about titles. Failures are
// reported on w and yield an empty summary.
func summarizeOrWarn(ctx context.Context, titles []string, w io.Writer) string {
	client := summary.NewClient(cfg.Summary, nil, observability.WithComponent(logger, "summary"))
	text, err := client.Summarize(ctx, titles)
	if err != nil {
		if !errors.Is(err, summary.ErrNothingToSummarize) {
			fmt.Fprintf(w, "warning: %v\n", err)
		}
		return ""
	}
	return text
}
