// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// settings is the effective configuration as shown by "config show"
type settings struct {
	Store       string `yaml:"store"`
	DatabaseURL string `yaml:"database_url"`
	RESTURL     string `yaml:"rest_url"`
	RESTKey     string `yaml:"rest_key"`
	Table       string `yaml:"table"`
	Timeout     string `yaml:"timeout"`
	Output      string `yaml:"output"`
}

func (a *app) settings() settings {
	key := a.v.GetString(keyRESTKey)
	if key != "" {
		key = "********"
	}
	return settings{
		Store:       a.v.GetString(keyStore),
		DatabaseURL: a.v.GetString(keyDatabaseURL),
		RESTURL:     a.v.GetString(keyRESTURL),
		RESTKey:     key,
		Table:       a.v.GetString(keyTable),
		Timeout:     a.v.GetDuration(keyTimeout).String(),
		Output:      a.v.GetString(keyOutput),
	}
}

func (a *app) newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage til configuration",
		Long: `Manage til configuration.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (TIL_*)
3. Config file (~/.til/config.yaml)
4. Defaults`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if file := a.v.ConfigFileUsed(); file != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n\n", file)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "No configuration file found (using defaults)\n\n")
			}

			data, err := yaml.Marshal(a.settings())
			if err != nil {
				return fmt.Errorf("error marshaling config: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}

	configCmd.AddCommand(showCmd)
	return configCmd
}
