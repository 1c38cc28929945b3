package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kondannyobhikkhu/tipitaka/internal/config"
)

// ConfigCmd prints the effective configuration as TOML.
func ConfigCmd(flags *Flags) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  wrapArgs("config", cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				fmt.Fprint(cmd.OutOrStdout(), config.DefaultConfigToml)
				return nil
			}
			env, err := flags.Setup(false)
			if err != nil {
				return wrapCommandError("config", err)
			}
			defer env.Close()
			if env.Config.Path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", env.Config.Path)
			}
			if err := env.Config.Encode(cmd.OutOrStdout()); err != nil {
				return wrapCommandError("config", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&defaults, "default", false, "Print the default configuration file")
	return cmd
}
