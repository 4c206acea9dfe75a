package product

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/resource"
)

const Noun = "produk"

// CategoryChecker is satisfied by the category service.
type CategoryChecker interface {
	IsValidCategory(name string) bool
}

var ErrUnknownCategory = internal.NewValidationError("Kategori produk tidak dikenal", internal.ErrCodeValidationFailed)

func NewService(repo resource.RepositoryAPI[Product], categories CategoryChecker, logger *slog.Logger) *resource.Service[Product] {
	normalize := func(p *Product) error {
		p.SKU = strings.ToUpper(strings.TrimSpace(p.SKU))
		p.Category = strings.ToLower(strings.TrimSpace(p.Category))
		if p.Category != "" && categories != nil && !categories.IsValidCategory(p.Category) {
			return ErrUnknownCategory
		}
		return nil
	}

	return resource.NewService(repo, Noun, resource.Hooks[Product]{
		Validate: (*Product).Validate,
		BeforeCreate: func(_ context.Context, _ *auth.User, p *Product) error {
			return normalize(p)
		},
		BeforeUpdate: func(_ context.Context, _ *auth.User, _, p *Product) error {
			return normalize(p)
		},
	}, logger)
}
