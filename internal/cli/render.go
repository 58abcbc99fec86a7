package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/evcraddock/commentkit/internal/comment"
	"github.com/evcraddock/commentkit/internal/markup"
)

func newRenderCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a comment tree to HTML",
		Long: `Render a comment tree described in YAML or JSON to HTML on stdout.
Use "-" to read from stdin. With --remote the server renders it instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], remote)
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "render via the server's /api/render endpoint")

	return cmd
}

func runRender(cmd *cobra.Command, path string, remote bool) error {
	spec, err := readSpec(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	var out string
	if remote {
		out, err = newAPIClient().Render(spec, prefix())
		if err != nil {
			return fmt.Errorf("rendering remotely: %w", err)
		}
	} else {
		n, err := spec.Build(prefix())
		if err != nil {
			return err
		}
		out = markup.String(n)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]string{"html": out})
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// readSpec decodes a comment spec from a file, or stdin for "-". JSON input
// parses as YAML.
func readSpec(stdin io.Reader, path string) (comment.Spec, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return comment.Spec{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var spec comment.Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return comment.Spec{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return spec, nil
}
