// Package recallcmder
package recallcmder

import (
	"github.com/spf13/cobra"

	clearcmder "github.com/papercomputeco/recall/cmd/recall/clear"
	configcmder "github.com/papercomputeco/recall/cmd/recall/config"
	contextcmder "github.com/papercomputeco/recall/cmd/recall/context"
	initcmder "github.com/papercomputeco/recall/cmd/recall/init"
	postcmder "github.com/papercomputeco/recall/cmd/recall/post"
	servecmder "github.com/papercomputeco/recall/cmd/recall/serve"
	versioncmder "github.com/papercomputeco/recall/cmd/version"
)

const recallLongDesc string = `Recall is a shared insight store for coding-assistant sessions.

Run the server using:
  recall serve         Run the API server

Hook commands:
  recall post          Save a significant insight from a session transcript
  recall context       Print recent insights as a context block
  recall clear         Delete all stored insights`

const recallShortDesc string = "Recall - Session Insight Store"

func NewRecallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recall",
		Short: recallShortDesc,
		Long:  recallLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .recall/ directory location")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(postcmder.NewPostCmd())
	cmd.AddCommand(contextcmder.NewContextCmd())
	cmd.AddCommand(clearcmder.NewClearCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
