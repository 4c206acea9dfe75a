package postgres

import (
	"github.com/frahmantamala/distribution-admin/internal/product"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"gorm.io/gorm"
)

func NewProductRepository(db *gorm.DB) *resource.Repository[product.Product] {
	return resource.NewRepository[product.Product](db, resource.Options{
		Noun:           product.Noun,
		SearchColumns:  []string{"name", "sku"},
		CategoryColumn: "category",
		BrandColumn:    "brand",
		OrderBy:        "name ASC",
	})
}
