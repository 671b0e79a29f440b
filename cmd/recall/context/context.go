// Package contextcmder provides the context command: the consumer-side
// session hook that prints recent insights as a context block.
package contextcmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/recall/pkg/client"
	"github.com/papercomputeco/recall/pkg/config"
	"github.com/papercomputeco/recall/pkg/contextblock"
)

// contextHeader introduces the block when there is anything to print.
const contextHeader = "Insights from previous sessions:"

type ContextCommander struct {
	target string
	limit  int
}

const contextLongDesc string = `Print recent insights as a context block.

Fetches the most recent insights from the recall API and prints them one per
line, newest first, prefixed with a header. Prints nothing at all when the
store is empty or the server is unreachable, so session-start hooks can pipe
the output directly into a prompt without emitting an empty section.

Examples:
  recall context
  recall context --limit 50`

const contextShortDesc string = "Print recent insights as a context block"

func NewContextCmd() *cobra.Command {
	cmder := &ContextCommander{}

	var v *viper.Viper

	cmd := &cobra.Command{
		Use:   "context",
		Short: contextShortDesc,
		Long:  contextLongDesc,
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
				config.FlagContextLimit,
			})

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.target = v.GetString("client.api_target")
			cmder.limit = v.GetInt("hooks.context_limit")

			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.target)
	config.AddIntFlag(cmd, config.Flags, config.FlagContextLimit, &cmder.limit)

	return cmd
}

func (c *ContextCommander) run(cmd *cobra.Command) error {
	ctx, cancel := context.WithTimeout(context.Background(), client.DefaultTimeout)
	defer cancel()

	messages, err := client.New(c.target).Recent(ctx, c.limit)
	if err != nil {
		// Consumer hooks stay quiet on failure; an unreachable server must
		// not break session startup.
		return nil
	}

	block := contextblock.Format(messages)
	if block == "" {
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", contextHeader, block)
	return nil
}
