package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sneakerfitai/sneakerfitai/internal/app"
	"github.com/sneakerfitai/sneakerfitai/internal/seed"
	"github.com/sneakerfitai/sneakerfitai/internal/usecase"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled sample products into the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		var uc usecase.ProductUsecase
		application := app.New(fx.Populate(&uc))

		if err := application.Start(context.Background()); err != nil {
			return err
		}
		defer func() {
			if err := application.Stop(context.Background()); err != nil {
				zap.L().Warn("shutdown failed", zap.Error(err))
			}
		}()

		created, err := seed.Products(context.Background(), uc, zap.L())
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d products.\n", created)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
