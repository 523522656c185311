package main

import (
	"github.com/spf13/cobra"

	"github.com/Astemirdum/lending-service/lending/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the returns consumer and the overdue scan",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		app.Run(loadConfig())
	},
}
