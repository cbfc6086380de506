package commands

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"insecticide/internal/cli"
)

// ConfigCommand handles the config subcommands
type ConfigCommand struct {
	env *cli.Environment
}

// NewConfigCommand creates a new ConfigCommand
func NewConfigCommand(env *cli.Environment) *ConfigCommand {
	return &ConfigCommand{env: env}
}

// Get prints a single stored value
func (cc *ConfigCommand) Get(cmd *cobra.Command, args []string) error {
	val, ok, err := cc.env.Store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("config key %q is not set", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

// Set stores a single value
func (cc *ConfigCommand) Set(cmd *cobra.Command, args []string) error {
	if err := cc.env.Store.Set(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	cc.env.Logger.Debug("Updated configuration value", zap.String("key", args[0]))
	return nil
}

// List prints every stored value sorted by key
func (cc *ConfigCommand) List(cmd *cobra.Command, args []string) error {
	values, err := cc.env.Store.All(cmd.Context())
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	for _, k := range keys {
		fmt.Fprintf(out, "%s=%s\n", color.CyanString("%s", k), values[k])
	}
	return nil
}
