package storage

import (
	"context"
	"fmt"

	"github.com/dshills/orderbot/pkg/types"
)

// seedCategory is one category of the demo menu with its products
type seedCategory struct {
	Name     string
	Products []types.Product
}

// DemoCatalog is inserted on first start: 4 categories, 11 products.
var DemoCatalog = []seedCategory{
	{
		Name: "🍕 Pitsa",
		Products: []types.Product{
			{Name: "Margarita", Price: 45000, Description: "Klassik italyan pitsasi"},
			{Name: "Pepperoni", Price: 55000, Description: "Pepperoni kolbasa bilan"},
			{Name: "Tovuqli pitsa", Price: 50000, Description: "Tovuq go'shti va zaytun"},
		},
	},
	{
		Name: "🍔 Burger",
		Products: []types.Product{
			{Name: "Klassik burger", Price: 35000, Description: "Mol go'shti, pomidor, salat"},
			{Name: "Chizburger", Price: 40000, Description: "Ikki qavat go'sht va pishloq"},
			{Name: "Tovuqli burger", Price: 38000, Description: "Qovurilgan tovuq filesi"},
		},
	},
	{
		Name: "🥤 Ichimliklar",
		Products: []types.Product{
			{Name: "Cola 0.5L", Price: 8000, Description: "Sovuq cola"},
			{Name: "Fanta 0.5L", Price: 8000, Description: "Apelsinli ichimlik"},
			{Name: "Suv 0.5L", Price: 3000, Description: "Toza ichimlik suvi"},
		},
	},
	{
		Name: "🍰 Desertlar",
		Products: []types.Product{
			{Name: "Shokoladli tort", Price: 25000, Description: "Yumshoq shokoladli"},
			{Name: "Cheesecake", Price: 30000, Description: "Klassik cheesecake"},
		},
	},
}

// Seed inserts DemoCatalog if the catalog has no categories. It reports
// whether anything was inserted. The check and the inserts share one
// transaction, so a catalog is never seeded twice.
func Seed(ctx context.Context, s Storage) (bool, error) {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	count, err := tx.CountCategories(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	for _, sc := range DemoCatalog {
		category := &types.Category{Name: sc.Name}
		if err := tx.CreateCategory(ctx, category); err != nil {
			return false, err
		}

		for _, p := range sc.Products {
			product := p
			product.CategoryID = category.ID
			if err := tx.CreateProduct(ctx, &product); err != nil {
				return false, fmt.Errorf("failed to seed %q: %w", p.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed: %w", err)
	}
	return true, nil
}
