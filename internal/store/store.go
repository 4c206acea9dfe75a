package store

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/common/validation"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/frahmantamala/distribution-admin/internal/resource"
)

const Noun = "toko"

// Store is a retail customer outlet owned by one salesperson.
type Store struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	Owner         string    `gorm:"column:owner" json:"owner"`
	Phone         string    `gorm:"column:phone" json:"phone"`
	Address       string    `gorm:"column:address" json:"address"`
	City          string    `gorm:"column:city;index" json:"city"`
	SalesUsername string    `gorm:"column:sales_username;index" json:"salesUsername"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Store) TableName() string {
	return "stores"
}

func (s *Store) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", s.Name).Required().MaxLength(150)
	v.Field("phone", s.Phone).MaxLength(30)
	v.Field("salesUsername", s.SalesUsername).Required()
	return v.Validate()
}

func NewService(repo resource.RepositoryAPI[Store], logger *slog.Logger) *resource.Service[Store] {
	return resource.NewService(repo, Noun, resource.Hooks[Store]{
		Validate: (*Store).Validate,
		BeforeCreate: func(_ context.Context, caller *auth.User, s *Store) error {
			s.Name = strings.TrimSpace(s.Name)
			// sales staff register stores under their own name
			if caller != nil && (s.SalesUsername == "" || caller.Role.In(role.SalesRetail, role.SalesProject)) {
				s.SalesUsername = caller.Username
			}
			return nil
		},
		BeforeUpdate: func(_ context.Context, caller *auth.User, existing, incoming *Store) error {
			incoming.Name = strings.TrimSpace(incoming.Name)
			if caller != nil && caller.Role.In(role.SalesRetail, role.SalesProject) {
				if existing.SalesUsername != caller.Username {
					return internal.ErrUnauthorizedAccess
				}
				incoming.SalesUsername = existing.SalesUsername
			}
			return nil
		},
	}, logger)
}
