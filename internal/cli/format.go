package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/evcraddock/commentkit/internal/thread"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printThreadTable prints threads as a formatted table.
func printThreadTable(out io.Writer, threads []*thread.Thread) error {
	if len(threads) == 0 {
		fmt.Fprintln(out, "No threads found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tCREATED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, t := range threads {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n",
			t.ID, truncate(t.Title, 50), humanize.Time(t.CreatedAt)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d threads\n", len(threads))
	return nil
}

// printCommentTree prints comments with replies indented under parents.
func printCommentTree(w io.Writer, roots []*thread.Node) {
	if len(roots) == 0 {
		fmt.Fprintln(w, "No comments.")
		return
	}
	for _, n := range roots {
		printNode(w, n, 0)
	}
}

func printNode(w io.Writer, n *thread.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	c := n.Comment
	fmt.Fprintf(w, "%s[%s] #%d (%s)\n", indent, c.CreatedAt.Format("2006-01-02 15:04"), c.ID, authorName(c.Author))
	for _, line := range strings.Split(c.Text, "\n") {
		fmt.Fprintf(w, "%s  %s\n", indent, line)
	}
	fmt.Fprintln(w)
	for _, r := range n.Replies {
		printNode(w, r, depth+1)
	}
}

// printCommentSingle prints a single comment in text format.
func printCommentSingle(w io.Writer, c *thread.Comment) {
	if c.ParentID != nil {
		fmt.Fprintf(w, "Reply #%d added to #%d.\n  %s\n", c.ID, *c.ParentID, c.Text)
		return
	}
	fmt.Fprintf(w, "Comment #%d added.\n  %s\n", c.ID, c.Text)
}

func authorName(s string) string {
	if s == "" {
		return "anonymous"
	}
	return s
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
