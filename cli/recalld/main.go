package main

import (
	"os"

	servecmder "github.com/papercomputeco/recall/cmd/recall/serve"
)

func main() {
	cmd := servecmder.NewServeCmd()
	cmd.Use = "recalld"
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .recall/ directory location")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
