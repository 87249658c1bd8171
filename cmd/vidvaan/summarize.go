// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vidvaan/internal/observability"
	"github.com/pdiddy/vidvaan/internal/summary"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [titles...]",
	Short: "Summarize publication titles with the AI summary service",
	Long: `Summarize sends publication titles to the summary service and prints the
summary it returns. Titles come from the arguments, or one per line from
stdin when the only argument is "-".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().String("server", "", "summary service base URL (overrides config)")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	titles := args
	if len(args) == 1 && args[0] == "-" {
		var err error
		titles, err = readLines(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading titles: %w", err)
		}
	}

	summaryCfg := cfg.Summary
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		summaryCfg.ServerBase = server
	}

	client := summary.NewClient(summaryCfg, nil, observability.WithComponent(logger, "summary"))
	text, err := client.Summarize(cmd.Context(), titles)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: summary unavailable: %v\n", err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
