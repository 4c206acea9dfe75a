package postgres

import (
	"github.com/frahmantamala/distribution-admin/internal/quotation"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"gorm.io/gorm"
)

func NewQuotationRepository(db *gorm.DB) *resource.Repository[quotation.Quotation] {
	return resource.NewRepository[quotation.Quotation](db, resource.Options{
		Noun:           quotation.Noun,
		UsernameColumn: "created_by",
		DateColumn:     "created_at",
		SearchColumns:  []string{"customer", "contact"},
	})
}
