package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigSetCmd(), newConfigPathCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := requireDeps()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(d.Config.Get())
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting and save it",
		Long: `Change one setting and save it to config.yaml.

Keys: api.base_url, api.timeout_seconds, system.log_level,
system.log_format, system.no_color, dev.addr.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := requireDeps()
			if err != nil {
				return err
			}
			if err := d.Config.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := d.Config.Save(); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.Theme.SuccessCard("Updated "+args[0], d.Theme.KeyValue("Value", args[1])))
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := requireDeps()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.Config.Dir())
			return nil
		},
	}
}
