// Package seed loads a bundled sample catalog, for demos and fresh
// installs against an empty backend.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sneakerfitai/sneakerfitai/internal/models"
	"github.com/sneakerfitai/sneakerfitai/internal/usecase"
)

//go:embed data/products.yaml
var defaultProductsData []byte

type defaultProduct struct {
	Name      string   `yaml:"name"`
	Link      string   `yaml:"link"`
	ImageSrc  string   `yaml:"image_src"`
	ColorTags []string `yaml:"color_tags"`
}

// Products inserts the bundled sample products, skipping names already in
// the catalog. It returns the number of products created.
func Products(ctx context.Context, uc usecase.ProductUsecase, log *zap.Logger) (int, error) {
	var defaults []defaultProduct
	if err := yaml.Unmarshal(defaultProductsData, &defaults); err != nil {
		return 0, fmt.Errorf("failed to unmarshal default products: %w", err)
	}

	existing, err := uc.List(ctx, 1, 100)
	if err != nil {
		return 0, fmt.Errorf("failed to list products: %w", err)
	}
	present := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		present[p.Name] = struct{}{}
	}

	created := 0
	for _, def := range defaults {
		if _, ok := present[def.Name]; ok {
			log.Debug("sample product already exists", zap.String("name", def.Name))
			continue
		}

		if _, err := uc.Create(ctx, models.Product{
			Name:      def.Name,
			Link:      def.Link,
			ImageSrc:  def.ImageSrc,
			ColorTags: def.ColorTags,
		}); err != nil {
			return created, fmt.Errorf("failed to create sample product %q: %w", def.Name, err)
		}
		log.Info("created sample product", zap.String("name", def.Name))
		created++
	}

	return created, nil
}
