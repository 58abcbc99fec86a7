package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change CLI configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eff := CLIConfig{
				ServerURL: getServerURL(),
				Prefix:    prefix(),
				DevMode:   getDevMode(),
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), eff)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "server_url: %s\n", eff.ServerURL)
			fmt.Fprintf(out, "api_key:    %s\n", maskKey(getAPIKey()))
			fmt.Fprintf(out, "prefix:     %s\n", eff.Prefix)
			fmt.Fprintf(out, "dev_mode:   %t\n", eff.DevMode)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a configuration value",
		Long:  "Persist a configuration value to ~/.config/ck/config.yaml. Keys: server_url, api_key, prefix, dev_mode.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.set(args[0], args[1]); err != nil {
				return err
			}
			if err := saveConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s.\n", args[0])
			return nil
		},
	})

	return cmd
}

// maskKey hides all but the identifying prefix of a key.
func maskKey(k string) string {
	if k == "" {
		return "(none)"
	}
	if len(k) <= 8 {
		return "********"
	}
	return k[:8] + "..."
}
