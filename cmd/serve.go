package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/sneakerfitai/sneakerfitai/internal/app"
	"github.com/sneakerfitai/sneakerfitai/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the product API server",
	Run: func(cmd *cobra.Command, args []string) {
		app.New(
			fx.Invoke(server.StartServer),
		).Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
