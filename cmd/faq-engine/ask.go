// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/faq-engine/internal/chat"
	"github.com/pdiddy/faq-engine/internal/match"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question",
	Long: `Ask matches one question and prints the answer, or the rephrase
prompt when nothing reaches the confidence threshold. Use --top to list the
best-scoring entries regardless of threshold.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	fromStore, _ := cmd.Flags().GetBool("from-store")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	top, _ := cmd.Flags().GetInt("top")
	query := strings.Join(args, " ")

	e, _, err := newLoadedEngine(context.Background(), fromStore)
	if err != nil {
		return err
	}

	if top > 0 {
		ranked, err := e.Rank(query, top)
		if err != nil {
			return err
		}
		return formatRanking(os.Stdout, ranked, jsonOutput)
	}

	r, err := e.Match(query)
	if err != nil {
		return err
	}
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	fmt.Println(chat.Format(r))
	return nil
}

func formatRanking(w io.Writer, ranked []match.Scored, jsonOutput bool) error {
	if jsonOutput {
		if ranked == nil {
			ranked = []match.Scored{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}

	if len(ranked) == 0 {
		fmt.Fprintln(w, "No entries share a term with the question.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-6s  %s\n", "Rank", "Score", "Question")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for i, s := range ranked {
		fmt.Fprintf(w, "%-4d  %-6.2f  %s\n", i+1, s.Score, s.Entry.Question)
	}
	return nil
}

func init() {
	askCmd.Flags().Bool("from-store", false, "answer from the knowledge store instead of the built-in FAQ")
	askCmd.Flags().Bool("json", false, "output the result as JSON")
	askCmd.Flags().Int("top", 0, "list the N best-scoring entries instead of a single answer")

	rootCmd.AddCommand(askCmd)
}
