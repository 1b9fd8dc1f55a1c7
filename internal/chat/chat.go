// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chat runs the interactive question/answer loop on a console.
package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/faq-engine/internal/match"
)

// Console strings.
const (
	Banner   = "FAQ bot is ready! (type 'exit' or 'quit' to stop)"
	Prompt   = "You: "
	Goodbye  = "Goodbye!"
	Rephrase = "Sorry, I don't know the answer to that. Can you rephrase?"
)

// Matcher answers a single query. *engine.Engine satisfies it.
type Matcher interface {
	Match(query string) (match.Result, error)
}

// IsExit reports whether line is an exit command.
func IsExit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit", "quit":
		return true
	}
	return false
}

// Format renders a result the way the console shows it.
func Format(r match.Result) string {
	if !r.Matched() {
		return Rephrase
	}
	return fmt.Sprintf("%s  (confidence: %.2f)", r.Answer, r.Score)
}

// Run reads questions from in and writes answers to out until an exit
// command, end of input, or ctx cancellation. Matcher errors are shown and
// the loop continues.
func Run(ctx context.Context, in io.Reader, out io.Writer, m Matcher) error {
	fmt.Fprintf(out, "%s\n\n", Banner)

	r := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, Prompt)
		raw, err := r.ReadString('\n')
		// A final line without a newline is still answered.
		if err != nil && (err != io.EOF || raw == "") {
			fmt.Fprintln(out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line := strings.TrimSpace(raw)
		if IsExit(line) {
			fmt.Fprintln(out, Goodbye)
			return nil
		}

		res, err := m.Match(line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n\n", err)
			continue
		}
		fmt.Fprintf(out, "%s\n\n", Format(res))
	}
}
