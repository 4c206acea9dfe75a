package product

import (
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int64           `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	SKU       string          `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	Brand     string          `gorm:"column:brand;index" json:"brand"`
	Category  string          `gorm:"column:category;index" json:"category"`
	Unit      string          `gorm:"column:unit" json:"unit"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(15,2);not null" json:"price"`
	Stock     int64           `gorm:"column:stock;not null" json:"stock"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", p.Name).Required().MaxLength(150)
	v.Field("sku", p.SKU).Required().MaxLength(50)
	v.Field("price", p.Price).NonNegative()
	v.Field("stock", p.Stock).MinInt(0, internal.ErrCodeValidationFailed)
	return v.Validate()
}
