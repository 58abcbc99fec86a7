package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newThreadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thread",
		Short: "Create and list threads",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "new <title>",
			Short: "Start a new thread",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runThreadNew,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List threads, newest first",
			Args:  cobra.NoArgs,
			RunE:  runThreadList,
		},
	)

	return cmd
}

func runThreadNew(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("thread title is required")
	}

	t, err := newAPIClient().CreateThread(title)
	if err != nil {
		return fmt.Errorf("creating thread: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), t)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Thread #%d created: %s\n", t.ID, t.Title)
	return nil
}

func runThreadList(cmd *cobra.Command, args []string) error {
	threads, err := newAPIClient().ListThreads()
	if err != nil {
		return fmt.Errorf("listing threads: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), threads)
	}
	return printThreadTable(cmd.OutOrStdout(), threads)
}
