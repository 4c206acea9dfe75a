package webproduct

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/common/validation"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"github.com/shopspring/decimal"
)

const Noun = "produk web"

// WebProduct is a catalogue entry shown on the public website.
type WebProduct struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"column:title;not null" json:"title"`
	Brand       string          `gorm:"column:brand;index" json:"brand"`
	Category    string          `gorm:"column:category;index" json:"category"`
	Description string          `gorm:"column:description" json:"description"`
	ImageURL    string          `gorm:"column:image_url" json:"imageUrl"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(15,2);not null" json:"price"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (WebProduct) TableName() string {
	return "web_products"
}

func (p *WebProduct) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("title", p.Title).Required().MaxLength(200)
	v.Field("price", p.Price).NonNegative()
	v.Field("imageUrl", p.ImageURL).Custom(func(value interface{}) *internal.AppError {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return internal.NewValidationFieldError("imageUrl", "imageUrl harus berupa URL http(s)", internal.ErrCodeValidationFailed)
		}
		return nil
	})
	return v.Validate()
}

func NewService(repo resource.RepositoryAPI[WebProduct], logger *slog.Logger) *resource.Service[WebProduct] {
	trim := func(p *WebProduct) {
		p.Title = strings.TrimSpace(p.Title)
		p.ImageURL = strings.TrimSpace(p.ImageURL)
	}
	return resource.NewService(repo, Noun, resource.Hooks[WebProduct]{
		Validate: (*WebProduct).Validate,
		BeforeCreate: func(_ context.Context, _ *auth.User, p *WebProduct) error {
			trim(p)
			return nil
		},
		BeforeUpdate: func(_ context.Context, _ *auth.User, _, p *WebProduct) error {
			trim(p)
			return nil
		},
	}, logger)
}
