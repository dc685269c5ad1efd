package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sneakerfitai/sneakerfitai/internal/app"
	"github.com/sneakerfitai/sneakerfitai/internal/models"
	"github.com/sneakerfitai/sneakerfitai/internal/store"
	"github.com/sneakerfitai/sneakerfitai/pkg/dataurl"
)

var (
	listSearch string
	listPages  int

	addName  string
	addLink  string
	addImage string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the product list, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, st *store.Store) error {
			if err := st.Refresh(ctx); err != nil {
				fmt.Println("Could not load products; the list is empty.")
				return err
			}
			for page := 1; page < listPages && st.CanLoadMore(listSearch); page++ {
				if err := st.LoadMore(ctx); err != nil {
					return err
				}
			}

			products := st.Filter(listSearch)
			if len(products) == 0 {
				fmt.Println("No products found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCOLORS\tLINK")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, strings.Join(p.ColorTags, ","), p.Link)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if st.CanLoadMore(listSearch) {
				fmt.Println("\nMore products available; raise --pages to load them.")
			}
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		var imageSrc string
		if addImage != "" {
			encoded, err := dataurl.EncodeFile(addImage)
			if err != nil {
				return err
			}
			imageSrc = encoded
		}

		return withStore(func(ctx context.Context, st *store.Store) error {
			created, err := st.Create(ctx, store.CreateInput{
				Name:     addName,
				Link:     addLink,
				ImageSrc: imageSrc,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Added %s (%s)\n", created.Name, created.ID)
			if len(created.ColorTags) > 0 {
				fmt.Printf("Colors: %s\n", strings.Join(created.ColorTags, ", "))
			}
			return nil
		})
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a product by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		return withStore(func(ctx context.Context, st *store.Store) error {
			if err := st.Refresh(ctx); err != nil {
				return err
			}
			for !loaded(st, id) && st.HasMore() {
				if err := st.LoadMore(ctx); err != nil {
					return err
				}
			}

			if err := st.Delete(ctx, id); err != nil {
				if errors.Is(err, models.ErrNotFound) {
					fmt.Printf("No product with id %s.\n", id)
				} else {
					fmt.Println("Delete failed; the product was restored to the list.")
				}
				return err
			}

			fmt.Println("Deleted.")
			return nil
		})
	},
}

// withStore builds the application graph, starts it, runs fn against the
// product store, and tears the graph down.
func withStore(fn func(ctx context.Context, st *store.Store) error) error {
	var st *store.Store
	application := app.New(fx.Populate(&st))

	if err := application.Start(context.Background()); err != nil {
		return err
	}
	defer func() {
		if err := application.Stop(context.Background()); err != nil {
			zap.L().Warn("shutdown failed", zap.Error(err))
		}
	}()

	return fn(context.Background(), st)
}

func loaded(st *store.Store, id string) bool {
	for _, p := range st.Products() {
		if p.ID == id {
			return true
		}
	}
	return false
}

func init() {
	listCmd.Flags().StringVar(&listSearch, "search", "", "filter by name or color tag")
	listCmd.Flags().IntVar(&listPages, "pages", 1, "number of pages to load")

	addCmd.Flags().StringVar(&addName, "name", "", "product display name")
	addCmd.Flags().StringVar(&addLink, "link", "", "affiliate link")
	addCmd.Flags().StringVar(&addImage, "image", "", "path to the product image")

	rootCmd.AddCommand(listCmd, addCmd, rmCmd)
}
