package postgres

import (
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"github.com/frahmantamala/distribution-admin/internal/webproduct"
	"gorm.io/gorm"
)

func NewWebProductRepository(db *gorm.DB) *resource.Repository[webproduct.WebProduct] {
	return resource.NewRepository[webproduct.WebProduct](db, resource.Options{
		Noun:           webproduct.Noun,
		SearchColumns:  []string{"title", "description"},
		TitleColumn:    "title",
		BrandColumn:    "brand",
		CategoryColumn: "category",
	})
}
