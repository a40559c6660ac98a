package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repsac/gp-sort-sequences/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration utilities",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented starter config",
	Args:  cobra.NoArgs,
	RunE:  runConfigInitCmd,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the discovered configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigCheckCmd,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCheckCmd)
}

// loadConfig resolves the effective configuration: the --config flag
// wins, then discovery, then built-in defaults when no file exists.
func loadConfig() (*config.Config, error) {
	path := configFlag
	if path == "" {
		var err error
		path, err = config.Discover()
		if err != nil {
			return nil, err
		}
	}
	if path == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if issues := cfg.Validate(); len(issues) > 0 {
		return nil, &config.ConfigError{Path: path, Errors: issues}
	}
	return cfg, nil
}

func runConfigInitCmd(cmd *cobra.Command, args []string) error {
	path := configFlag
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.WriteDefault(path); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("config already exists at %s", path)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote starter config to %s\n", path)
	return nil
}

func runConfigCheckCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path := configFlag
	if path == "" {
		var err error
		path, err = config.Discover()
		if err != nil {
			return err
		}
	}
	if path == "" {
		fmt.Fprintln(out, "No config file found; built-in defaults apply")
		return nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if issues := cfg.Validate(); len(issues) > 0 {
		return &config.ConfigError{Path: path, Errors: issues}
	}
	fmt.Fprintf(out, "Config %s is valid\n", path)
	return nil
}
