package postgres

import (
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"github.com/frahmantamala/distribution-admin/internal/store"
	"gorm.io/gorm"
)

func NewStoreRepository(db *gorm.DB) *resource.Repository[store.Store] {
	return resource.NewRepository[store.Store](db, resource.Options{
		Noun:           store.Noun,
		UsernameColumn: "sales_username",
		SearchColumns:  []string{"name", "owner", "city"},
		OrderBy:        "name ASC",
	})
}
