// Package cli defines the cobra command tree for ck.
package cli

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evcraddock/commentkit/internal/client"
	"github.com/evcraddock/commentkit/internal/comment"
	"github.com/evcraddock/commentkit/internal/db"
	"github.com/evcraddock/commentkit/internal/thread"
)

var (
	flagFormat string
	flagDB     string
	flagPrefix string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ck",
		Short:         "Render and host threaded comments",
		Long:          "A toolkit for threaded comments. Render comment trees to HTML, manage threads, and serve a web UI with a JSON API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.config/ck/comments.db)")
	root.PersistentFlags().StringVar(&flagPrefix, "prefix", "", "class prefix for rendered comments (default: ant-comment)")

	root.AddCommand(
		newRenderCmd(),
		newThreadCmd(),
		newCommentCmd(),
		newCommentsCmd(),
		newRemoveCmd(),
		newKeyCmd(),
		newServeCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database using the --db flag or default path.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// newThreadRepo opens the database and returns a thread repository.
func newThreadRepo() (*thread.Repository, *sql.DB, error) {
	database, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	return thread.NewRepository(database), database, nil
}

// newAPIClient creates an HTTP client for the comment server API.
func newAPIClient() *client.Client {
	return client.New(getServerURL(), getAPIKey())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// prefix returns the class prefix from the flag, env var, config, or default.
func prefix() string {
	if flagPrefix != "" {
		return flagPrefix
	}
	if p := getPrefix(); p != "" {
		return p
	}
	return comment.DefaultPrefix
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %s", kind, s)
	}
	return id, nil
}
