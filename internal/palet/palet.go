package palet

import (
	"context"
	"strings"
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

const (
	PaletNoun = "palet"
	StockNoun = "stok"
)

var ErrPaletNotFound = internal.NewNotFoundError("Palet tidak ditemukan", internal.ErrCodeRecordNotFound)

// Palet is a physical pallet in the warehouse, labelled with a scannable code.
type Palet struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"column:code;uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"column:name" json:"name"`
	Location  string    `gorm:"column:location" json:"location"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Palet) TableName() string {
	return "palets"
}

func (p *Palet) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("code", p.Code).Required().MaxLength(64)
	v.Field("location", p.Location).MaxLength(100)
	return v.Validate()
}

// Stock is one product line sitting on a palet.
type Stock struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	PaletID     int64           `gorm:"column:palet_id;index;not null" json:"paletId"`
	ProductName string          `gorm:"column:product_name;not null" json:"productName"`
	Quantity    int64           `gorm:"column:quantity;not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(15,2);not null" json:"price"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Stock) TableName() string {
	return "stocks"
}

func (s *Stock) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("paletId", s.PaletID).Required()
	v.Field("productName", s.ProductName).Required().MaxLength(150)
	v.Field("quantity", s.Quantity).MinInt(0, internal.ErrCodeValidationFailed)
	v.Field("price", s.Price).NonNegative()
	return v.Validate()
}

// ScanResult is what the scan-to-navigate flow lands on.
type ScanResult struct {
	Palet  Palet   `json:"palet"`
	Stocks []Stock `json:"stocks"`
}

type RepositoryAPI interface {
	GetByCode(ctx context.Context, code string) (*Palet, error)
	Exists(ctx context.Context, id int64) (bool, error)
	StocksOf(ctx context.Context, paletID int64) ([]Stock, error)
}

// NormalizeCode uppercases and trims scanner input.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
