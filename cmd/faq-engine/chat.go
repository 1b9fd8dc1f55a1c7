// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/faq-engine/internal/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Answer questions interactively",
	Long: `Chat reads one question per line and prints the best-matching answer
with its confidence, or asks you to rephrase when nothing matches well
enough. Type "exit" or "quit" to stop.

With --watch, edits to the --file knowledge file are picked up without
restarting.`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	fromStore, _ := cmd.Flags().GetBool("from-store")
	watch, _ := cmd.Flags().GetBool("watch")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e, kbCfg, err := newLoadedEngine(ctx, fromStore)
	if err != nil {
		return err
	}

	if watch {
		if kbCfg.File == "" {
			return fmt.Errorf("--watch requires --file")
		}
		go func() {
			if err := e.Watch(ctx, kbCfg.File, os.Stderr, nil); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
		}()
	}

	return chat.Run(ctx, os.Stdin, os.Stdout, e)
}

func init() {
	chatCmd.Flags().Bool("from-store", false, "answer from the knowledge store instead of the built-in FAQ")
	chatCmd.Flags().Bool("watch", false, "reload the --file knowledge file when it changes")

	rootCmd.AddCommand(chatCmd)
}
