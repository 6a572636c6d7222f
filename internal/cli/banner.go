package cli

import (
	"fmt"
	"io"
	"strings"
)

var rule = strings.Repeat("=", 70)

// Banner prints a demo title between two rules.
func Banner(out io.Writer, title string) {
	fmt.Fprintf(out, "\n%s\n%s\n%s\n", rule, title, rule)
}

// ChatHeader prints the header shown right before the first prompt.
func ChatHeader(out io.Writer) {
	fmt.Fprintf(out, "\n%s\n💬 Interactive Chat (Type 'quit' to exit)\n%s\n\n", rule, rule)
}
