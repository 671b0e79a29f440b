// Package clearcmder provides the clear command for deleting all stored insights.
package clearcmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/recall/pkg/client"
	"github.com/papercomputeco/recall/pkg/config"
)

type ClearCommander struct {
	target string
}

const clearLongDesc string = `Delete all stored insights.

Clears every message from the recall store via the API. Unlike the hook
commands this is an explicit user action, so connection failures are
reported instead of swallowed.

Examples:
  recall clear`

const clearShortDesc string = "Delete all stored insights"

func NewClearCmd() *cobra.Command {
	cmder := &ClearCommander{}

	var v *viper.Viper

	cmd := &cobra.Command{
		Use:   "clear",
		Short: clearShortDesc,
		Long:  clearLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			var err error
			v, err = config.InitViper(configDir)
			if err != nil {
				return err
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagAPITarget,
			})

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.target = v.GetString("client.api_target")
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.target)

	return cmd
}

func (c *ClearCommander) run(cmd *cobra.Command) error {
	ctx, cancel := context.WithTimeout(context.Background(), client.DefaultTimeout)
	defer cancel()

	count, err := client.New(c.target).Clear(ctx)
	if err != nil {
		return fmt.Errorf("clearing insights: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d insight(s)\n", count)
	return nil
}
