package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/commentkit/internal/thread"
)

func newCommentCmd() *cobra.Command {
	var (
		parent int64
		author string
	)

	cmd := &cobra.Command{
		Use:   `comment <thread> "text"`,
		Short: "Add a comment to a thread",
		Long:  "Add a comment to a thread. Use --parent to reply to an existing comment.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID, err := parseID("thread", args[0])
			if err != nil {
				return err
			}

			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return fmt.Errorf("comment text is required")
			}

			nc := thread.NewComment{Author: author, Text: text}
			if cmd.Flags().Changed("parent") {
				nc.ParentID = &parent
			}

			comm, err := newAPIClient().AddComment(threadID, nc)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), comm)
			}
			printCommentSingle(cmd.OutOrStdout(), comm)
			return nil
		},
	}

	cmd.Flags().Int64Var(&parent, "parent", 0, "ID of the comment to reply to")
	cmd.Flags().StringVar(&author, "author", "", "author name shown on the comment")

	return cmd
}
