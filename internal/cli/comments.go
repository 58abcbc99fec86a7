package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/commentkit/internal/markup"
	"github.com/evcraddock/commentkit/internal/thread"
)

func newCommentsCmd() *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "comments <thread>",
		Short: "List comments for a thread",
		Long:  "List a thread's comments from the local database with replies nested under their parents.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComments(cmd, args[0], asHTML)
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "render the thread with the comment widget")

	return cmd
}

func runComments(cmd *cobra.Command, arg string, asHTML bool) error {
	id, err := parseID("thread", arg)
	if err != nil {
		return err
	}

	repo, database, err := newThreadRepo()
	if err != nil {
		return err
	}
	defer closeDB(database)

	t, err := repo.GetThread(id)
	if err != nil {
		return err
	}
	comments, err := repo.ListComments(id)
	if err != nil {
		return err
	}
	tree := thread.BuildTree(comments)
	out := cmd.OutOrStdout()

	if asHTML {
		n := thread.Render(tree, thread.ViewOptions{Prefix: prefix(), Now: time.Now()})
		_, err := fmt.Fprintln(out, markup.String(n))
		return err
	}
	if isJSON() {
		return printJSON(out, tree)
	}

	fmt.Fprintf(out, "%s (#%d), %d comments:\n\n", t.Title, t.ID, thread.Count(tree))
	printCommentTree(out, tree)
	return nil
}
