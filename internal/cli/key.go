package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/evcraddock/commentkit/internal/auth"
)

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage moderation API keys",
		Long:  "Manage the API keys that authorise comment removal. Operates on the local database.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a key and print it once",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runKeyCreate,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List keys",
			Args:  cobra.NoArgs,
			RunE:  runKeyList,
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Revoke a key",
			Args:  cobra.ExactArgs(1),
			RunE:  runKeyDelete,
		},
	)

	return cmd
}

func newKeyStore() (*auth.APIKeyStore, func(), error) {
	database, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	return auth.NewAPIKeyStore(database), func() { closeDB(database) }, nil
}

func runKeyCreate(cmd *cobra.Command, args []string) error {
	store, done, err := newKeyStore()
	if err != nil {
		return err
	}
	defer done()

	raw, key, err := store.Create(strings.Join(args, " "))
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]any{"key": raw, "record": key})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Key #%d (%s) created:\n\n  %s\n\n", key.ID, key.Name, raw)
	fmt.Fprintln(out, "Store it now; it cannot be shown again.")
	return nil
}

func runKeyList(cmd *cobra.Command, args []string) error {
	store, done, err := newKeyStore()
	if err != nil {
		return err
	}
	defer done()

	keys, err := store.List()
	if err != nil {
		return err
	}

	if isJSON() {
		if keys == nil {
			keys = []auth.APIKey{}
		}
		return printJSON(cmd.OutOrStdout(), keys)
	}
	if len(keys) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No keys.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPREFIX\tLAST USED")
	for _, k := range keys {
		used := "never"
		if k.LastUsedAt != nil {
			used = humanize.Time(*k.LastUsedAt)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", k.ID, k.Name, k.KeyPrefix, used)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: flushing table: %v\n", err)
	}
	return nil
}

func runKeyDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID("key", args[0])
	if err != nil {
		return err
	}

	store, done, err := newKeyStore()
	if err != nil {
		return err
	}
	defer done()

	if err := store.Delete(id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Key #%d revoked.\n", id)
	return nil
}
