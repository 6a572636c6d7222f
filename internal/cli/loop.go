// Package cli runs the interactive read / send / print loop shared by the demos.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	agent "github.com/armatrix/foundry-agent-go"
)

// Console texts.
const (
	PromptUser  = "You: "
	PromptAgent = "Agent: "
	Farewell    = "\n🤝 Thank You!"
)

// QuitWords end the loop when typed on their own (case-insensitive).
var QuitWords = []string{"quit", "exit", "q"}

// TurnFunc handles one non-blank user line and writes the reply to out.
type TurnFunc func(ctx context.Context, text string, out io.Writer) error

// Run prompts for input until a quit word, end of input or ctx is done.
// Blank lines are skipped without calling turn. Remote run failures and poll
// timeouts are printed and the loop continues; any other error ends the loop
// and is returned. When ctx is done while waiting for input Run returns
// ctx.Err() without waiting for the pending read.
func Run(ctx context.Context, in io.Reader, out io.Writer, turn TurnFunc) error {
	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)
	for {
		fmt.Fprint(out, PromptUser)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, Farewell)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out, Farewell)
				return nil
			}
			if l.err != nil {
				return fmt.Errorf("read input: %w", l.err)
			}
			line = strings.TrimRight(l.text, "\r")
		}

		if IsQuit(line) {
			fmt.Fprintln(out, Farewell)
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		fmt.Fprint(out, PromptAgent)
		if err := turn(ctx, line, out); err != nil {
			if agent.IsFatal(err) {
				fmt.Fprintln(out)
				return err
			}
			fmt.Fprintf(out, "error: %v", err)
		}
		fmt.Fprint(out, "\n\n")
	}
}

type inputLine struct {
	text string
	err  error
}

// readLines scans in on its own goroutine and stops once done is closed.
// The channel is unbuffered, so at most one line is read ahead of the prompt.
// It is closed at end of input. A read that never completes keeps the
// goroutine blocked after Run returns; the demos exit right after.
func readLines(in io.Reader, done <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	send := func(l inputLine) bool {
		select {
		case lines <- l:
			return true
		case <-done:
			return false
		}
	}
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if !send(inputLine{text: scanner.Text()}) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			send(inputLine{err: err})
		}
	}()
	return lines
}

// IsQuit reports whether line is one of the QuitWords.
func IsQuit(line string) bool {
	return slices.Contains(QuitWords, strings.ToLower(line))
}

// SubmitTurn returns a TurnFunc that sends each line to a hosted agent session.
func SubmitTurn(c *agent.Client) TurnFunc {
	return func(ctx context.Context, text string, out io.Writer) error {
		reply, err := c.Submit(ctx, text)
		if err != nil {
			return err
		}
		fmt.Fprint(out, reply)
		return nil
	}
}

// StreamTurn returns a TurnFunc that prints each streamed fragment as it arrives.
func StreamTurn(chat *agent.Chat) TurnFunc {
	return func(ctx context.Context, text string, out io.Writer) error {
		stream := chat.StreamTurn(ctx, text)
		defer stream.Close()
		for stream.Next() {
			fmt.Fprint(out, stream.Current())
		}
		return stream.Err()
	}
}
