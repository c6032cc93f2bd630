package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/QMSS-G5072-2024/nutrilog/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the nutrilog config file",
		Long:  "Write a starter YAML config file or print the effective configuration.",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with the effective settings",
		Long:        "Write the effective settings (defaults, environment and flags) to --config or $HOME/" + config.FileName + ".",
		Annotations: map[string]string{annotationSkipConfigFile: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			path := env.configFlag
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.Save(path, env.cfg, force); err != nil {
				if errors.Is(err, config.ErrExists) {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var secrets bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Long:  "Print the effective configuration after merging defaults, config file, environment and flags. The API key is masked unless --secrets is set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			data, err := config.Marshal(env.cfg, secrets)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if env.configFile != "" {
				fmt.Fprintf(out, "# %s\n", env.configFile)
			}
			fmt.Fprint(out, string(data))

			for _, err := range config.Validate(env.cfg) {
				env.logger.Warn("invalid config", "err", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&secrets, "secrets", false, "Print the API key in clear")
	return cmd
}
